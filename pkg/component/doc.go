// Package component mounts reactive components onto host elements.
//
// A [Definition] names a custom tag, where its template and style come
// from, and two hooks: Setup declares state before the template exists,
// and Bind registers event handlers once it does.
//
//	reg := component.NewRegistry(rt, component.NewLoader(os.DirFS("web")))
//	reg.Define(component.Definition{
//	    Tag: "count-component",
//	    Setup: func(s *component.Scope) {
//	        core.UseState(s.Component, "count", 5)
//	    },
//	    Bind: func(in *component.Instance) {
//	        count := core.StateOf[int](in.Component(), "count")
//	        in.On("increment", func(component.Event) { count.Set(count.Get() + 1) })
//	    },
//	})
//	reg.MountTree(page)
//
// Elements inside a mounted template bind to handlers through
// data-on="type:handler". [Registry.Dispatch] delivers an event to the
// innermost mounted component that bound the target.
//
// A host carrying data-root shares state with an enclosing component: on
// the frame after mounting it is connected to the record named by its
// data-parent attribute (written by the enclosing component's first flush),
// or to the id given as the data-root value.
package component
