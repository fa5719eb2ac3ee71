package handlers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/xolan/tally/internal/cli"
)

// ListProjects lists projects with their color and task count
func ListProjects(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	projects, err := deps.Services.Catalog.Projects(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No projects")
		_, _ = fmt.Fprintln(deps.Stdout, "Create one with: tally project add <name> [--color #rrggbb]")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "COLOR", "TASKS")
	for _, p := range projects {
		tbl.AddRow(cli.ShortID(p.Project.ID), p.Project.Name, p.Project.Color, p.Tasks)
	}
	_, _ = fmt.Fprintln(deps.Stdout, tbl)
}

// AddProject creates a project
func AddProject(deps *cli.Deps, name, color string) {
	if !ready(deps) {
		return
	}
	p, err := deps.Services.Catalog.AddProject(deps.Context(), name, color)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added project: %s (%s)\n", p.Name, p.Color)
}

// EditProject renames or recolors a project; nil values are unchanged
func EditProject(deps *cli.Deps, ref string, name, color *string) {
	if !ready(deps) {
		return
	}
	if name == nil && color == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one of --name or --color is required")
		deps.Exit(1)
		return
	}
	p, err := deps.Services.Catalog.EditProject(deps.Context(), ref, name, color)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated project: %s (%s)\n", p.Name, p.Color)
}

// DeleteProject deletes a project no task uses
func DeleteProject(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	p, err := deps.Services.Catalog.DeleteProject(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted project: %s\n", p.Name)
}

// ListBillingCodes lists billing codes with their task count
func ListBillingCodes(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	codes, err := deps.Services.Catalog.BillingCodes(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	if len(codes) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No billing codes")
		_, _ = fmt.Fprintln(deps.Stdout, "Create one with: tally code add <code>")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "CODE", "TASKS")
	for _, c := range codes {
		tbl.AddRow(cli.ShortID(c.Code.ID), c.Code.Code, c.Tasks)
	}
	_, _ = fmt.Fprintln(deps.Stdout, tbl)
}

// AddBillingCode creates a billing code
func AddBillingCode(deps *cli.Deps, code string) {
	if !ready(deps) {
		return
	}
	c, err := deps.Services.Catalog.AddBillingCode(deps.Context(), code)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added billing code: %s\n", c.Code)
}

// EditBillingCode changes a billing code's text
func EditBillingCode(deps *cli.Deps, ref, code string) {
	if !ready(deps) {
		return
	}
	c, err := deps.Services.Catalog.EditBillingCode(deps.Context(), ref, code)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated billing code: %s\n", c.Code)
}

// DeleteBillingCode deletes a billing code no task uses
func DeleteBillingCode(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	c, err := deps.Services.Catalog.DeleteBillingCode(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted billing code: %s\n", c.Code)
}

// ListFavorites lists favorite templates
func ListFavorites(deps *cli.Deps) {
	if !ready(deps) {
		return
	}
	favs, err := deps.Services.Catalog.Favorites(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	if len(favs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No favorites")
		_, _ = fmt.Fprintln(deps.Stdout, "Save one with: tally fav save <task>")
		return
	}

	st, err := deps.Services.Session().Load(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "PROJECT", "CODE")
	for _, f := range favs {
		project, code := "", ""
		if p := st.Project(f.ProjectID); p != nil {
			project = p.Name
		}
		if c := st.BillingCode(f.BillingCodeID); c != nil {
			code = c.Code
		}
		tbl.AddRow(cli.ShortID(f.ID), f.Name, project, code)
	}
	_, _ = fmt.Fprintln(deps.Stdout, tbl)
}

// SaveFavorite stores a task as a favorite template
func SaveFavorite(deps *cli.Deps, taskRef string) {
	if !ready(deps) {
		return
	}
	f, err := deps.Services.Catalog.SaveFavorite(deps.Context(), taskRef)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved favorite: %s (%s)\n", f.Name, cli.ShortID(f.ID))
}

// UseFavorite creates a task from a favorite template
func UseFavorite(deps *cli.Deps, favRef, date string) {
	if !ready(deps) {
		return
	}
	t, err := deps.Services.Catalog.UseFavorite(deps.Context(), favRef, date)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s on %s (%s)\n", t.Name, t.Date, cli.ShortID(t.ID))
}

// DeleteFavorite removes a favorite template
func DeleteFavorite(deps *cli.Deps, ref string) {
	if !ready(deps) {
		return
	}
	f, err := deps.Services.Catalog.DeleteFavorite(deps.Context(), ref)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted favorite: %s\n", f.Name)
}
