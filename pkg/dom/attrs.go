package dom

// Markup contract consumed by the reconciler.
const (
	AttrState         = "data-state"
	AttrCondition     = "data-condition"
	AttrConditionCase = "data-condition-case"
	AttrRepeat        = "data-repeat"
	AttrRepeatTmpl    = "data-repeat-template"
	AttrRepeatItem    = "data-repeat-item"
	AttrRepeatField   = "data-repeat-field"
	AttrID            = "data-id"
	AttrRoot          = "data-root"
	AttrParent        = "data-parent"
	AttrOn            = "data-on"
)

// Markup contract consumed by the router.
const (
	AttrRouterContainer = "data-router-container"
	AttrRouteLayout     = "data-route-layout"
	AttrRouteView       = "data-route-view"
	AttrRouteSlot       = "data-route-slot"
	AttrRouteShared     = "data-route-shared"
)
