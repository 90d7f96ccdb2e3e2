package support

import (
	"go.uber.org/fx"
)

// Module defines Fx options for the registration layer: the component and
// definition registries plus the JobFactory that fills them.
var Module = fx.Options(
	fx.Provide(NewComponentRegistry),
	fx.Provide(NewDefinitionRegistry),
	fx.Provide(NewJobFactory),
)
