package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/artpar/actionkit/app"
	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/page"
	"github.com/artpar/actionkit/domain/params"
	"github.com/artpar/actionkit/domain/result"
	"github.com/artpar/actionkit/domain/stream"
	"github.com/artpar/actionkit/domain/task"
)

// taskActions declares the taskboard actions. This is the reference for
// the declarative style: services carry the domain logic, configs carry
// projection rules, page resolution, and per-format response directives.
func taskActions(tasks *app.TaskService) []action.Config {
	return []action.Config{
		action.New("tasks.index").
			ServiceFunc(tasks.List).
			SkipAuthentication().
			PageFunc(indexPage).
			Build(),

		action.New("tasks.show").
			ServiceFunc(tasks.Get).
			SkipAuthentication().
			PageFunc(showPage).
			OnError(action.CategoryNotFound, func(r *action.ResponseBuilder) {
				r.RedirectTo("/tasks")
			}).
			Build(),

		action.New("tasks.new").
			ServiceFunc(tasks.Build).
			SkipAuthentication().
			PageFunc(formPage("New task", "/tasks", "post")).
			Build(),

		action.New("tasks.edit").
			ServiceFunc(tasks.Get).
			PageFunc(editPage).
			Build(),

		action.New("tasks.create").
			ServiceFunc(tasks.Create).
			ParamsKey("task").
			Permit(params.Key("title"), params.Key("notes"), params.Key("status")).
			OnSuccess(func(r *action.ResponseBuilder) {
				r.RedirectTo("/tasks")
				r.TurboStream(func(s *stream.Builder) {
					s.Append("tasks", stream.Partial("tasks/task", nil))
					s.Flash("notice", "Task created")
				})
			}).
			OnError(action.CategoryValidation, func(r *action.ResponseBuilder) {
				r.TurboStream(func(s *stream.Builder) {
					s.FormErrors(nil)
					s.Flash("alert", "Task could not be saved")
				})
			}).
			Build(),

		action.New("tasks.update").
			ServiceFunc(tasks.Update).
			ParamsKey("task").
			Permit(params.Key("title"), params.Key("notes"), params.Key("status")).
			OnSuccess(func(r *action.ResponseBuilder) {
				r.RedirectToFunc(func(ex *action.Execution) string {
					return "/tasks/" + ex.ID
				})
				r.TurboStream(func(s *stream.Builder) {
					s.Flash("notice", "Task updated")
				})
			}).
			Build(),

		action.New("tasks.destroy").
			ServiceFunc(tasks.Delete).
			OnSuccess(func(r *action.ResponseBuilder) {
				r.RedirectTo("/tasks")
				r.TurboStreamFunc(removeRowStream)
			}).
			Build(),

		action.New("tasks.toggle").
			ServiceFunc(tasks.Toggle).
			Frame("tasks").
			Build(),
	}
}

func indexPage(ctx context.Context, res result.Result) page.Config {
	return page.New("Tasks").
		WithSection("main", page.Section{
			Partial: "tasks/list",
			Locals:  map[string]any{"tasks": res.Collection, "total": res.Meta["total"]},
		})
}

func showPage(ctx context.Context, res result.Result) page.Config {
	return page.New("Task").
		WithSection("main", page.Section{
			Partial: "tasks/detail",
			Locals:  map[string]any{"task": res.Resource},
		})
}

func editPage(ctx context.Context, res result.Result) page.Config {
	actionPath := "/tasks"
	if t, ok := res.Resource.(task.Task); ok && t.ID != "" {
		actionPath = "/tasks/" + t.ID
	}
	return page.New("Edit task").
		WithSection("main", page.Section{
			Partial: "tasks/form",
			Locals:  map[string]any{"task": res.Resource, "action": actionPath, "method": "patch"},
		})
}

func formPage(title, actionPath, method string) action.PageFunc {
	return func(ctx context.Context, res result.Result) page.Config {
		return page.New(title).
			WithSection("main", page.Section{
				Partial: "tasks/form",
				Locals:  map[string]any{"task": res.Resource, "action": actionPath, "method": method},
			})
	}
}

// removeRowStream answers a destroy over Turbo Streams: remove the row,
// then flash. The target embeds the resource ID so it cannot be declared
// as a static op.
func removeRowStream(w http.ResponseWriter, r *http.Request, ex *action.Execution) {
	ops := stream.NewBuilder().
		Remove("task_" + ex.ID).
		Update(stream.FlashTarget, stream.Markup(`<div class="flash flash-notice">Task deleted</div>`)).
		Ops()
	body, err := stream.Render(r.Context(), ops, nil)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", stream.ContentType)
	fmt.Fprint(w, body)
}
