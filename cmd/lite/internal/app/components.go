package app

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/go-drift/lite/pkg/component"
	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/navigation"
	"github.com/go-drift/lite/pkg/persist"
)

// seedUsers is the number of users Count starts with. Users added later
// get larger ids and are the ones removeUser and updateUser act on.
const seedUsers = 3

const shellTag = "app-component"

func (a *App) shellDefinition(name string, routes []string) component.Definition {
	return component.Definition{
		Tag: shellTag,
		Setup: func(s *component.Scope) {
			core.UseState(s.Component, "title", name)
			core.UseState(s.Component, "route", "/")
			core.UseState(s.Component, "routeStack", []string{"/"})
		},
		Bind: func(in *component.Instance) {
			route := core.StateOf[string](in.Component(), "route")
			stack := core.StateOf[[]string](in.Component(), "routeStack")

			a.router = navigation.New(navigation.Config{
				Routes:   routes,
				Root:     in.Host(),
				Location: a.location,
				Logger:   a.logger,
				OnChange: func(c navigation.Change) {
					route.Set(c.Route)
					stack.Set(c.Stack)
					// Views are fresh clones on every render.
					a.registry.Sweep(a.page)
					if _, err := a.registry.MountTree(a.router.Container()); err != nil {
						a.logger.Error("mount route view", "route", c.Route, "error", err)
					}
				},
			})
			a.router.Start()

			in.On("navigate", func(ev component.Event) {
				path, _ := dom.Attr(ev.Target, "data-path")
				if path == "" {
					path = "/"
				}
				a.router.Navigate(path)
			})
		},
		Teardown: func(*component.Instance) {
			if a.router != nil {
				a.router.Dispose()
			}
		},
	}
}

func (a *App) countDefinition() component.Definition {
	return component.Definition{
		Tag: "count-component",
		Dir: "components",
		Setup: func(s *component.Scope) {
			core.UseState(s.Component, "count", 5)
			core.UseState[any](s.Component, "status", "Pending")
			core.UseState(s.Component, "users", seedUserList())
			if a.store == nil {
				return
			}
			if err := persist.Bind(s.Component, a.store, "count", "status", "users"); err != nil {
				a.logger.Warn("restore count state", "error", err)
			}
		},
		Bind: func(in *component.Instance) {
			c := in.Component()
			count := core.StateOf[int](c, "count")
			status := core.StateOf[any](c, "status")
			users := core.StateOf[core.List](c, "users")

			in.On("increment", func(component.Event) { count.Set(count.Get() + 1) })
			in.On("decrement", func(component.Event) { count.Set(count.Get() - 1) })
			in.On("clear", func(component.Event) { count.Set(0) })

			in.On("addUser", func(component.Event) {
				users.Apply(func(prev core.List) core.ListOp {
					return core.Add{Item: core.Item{"id": nextUserID(prev), "name": "joon", "age": 32}}
				})
			})
			in.On("removeUser", func(component.Event) {
				users.Apply(func(core.List) core.ListOp {
					return core.Remove{Match: addedUser}
				})
			})
			in.On("updateUser", func(component.Event) {
				users.Apply(func(core.List) core.ListOp {
					return core.Patch{
						Match: addedUser,
						With: func(it core.Item) core.Item {
							return core.Item{"age": userID(it) % 100, "email": "User@example.com"}
						},
					}
				})
			})
			in.On("reverse", func(component.Event) {
				next := slices.Clone(users.Get())
				slices.Reverse(next)
				users.Set(next)
			})
			in.On("setStatus", func(component.Event) {
				status.Set(nextStatus(status.Get()))
			})
			in.On("moveToHome", func(component.Event) {
				a.location.SetHash("/")
			})
		},
	}
}

func badgeDefinition() component.Definition {
	return component.Definition{
		Tag:          "count-badge",
		TemplatePath: "components/Badge.html",
		StylePath:    "components/Badge.css",
	}
}

func seedUserList() core.List {
	users := make(core.List, seedUsers)
	for i := range users {
		users[i] = core.Item{
			"id":    i + 1,
			"name":  fmt.Sprintf("User%d", i+1),
			"age":   20 + i%30,
			"email": "User",
		}
	}
	return users
}

// nextStatus cycles true, false, "Pending", "Error" and back to true.
func nextStatus(s any) any {
	switch s {
	case true:
		return false
	case false:
		return "Pending"
	case "Pending":
		return "Error"
	default:
		return true
	}
}

func userID(it core.Item) int {
	id, _ := strconv.Atoi(it.ID())
	return id
}

func addedUser(it core.Item) bool {
	return userID(it) > seedUsers
}

func nextUserID(users core.List) int {
	next := len(users) + 1
	for _, u := range users {
		if id := userID(u); id >= next {
			next = id + 1
		}
	}
	return next
}
