package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bunchhieng/arx/internal/app"
	"github.com/bunchhieng/arx/internal/browser"
	"github.com/bunchhieng/arx/internal/clipboard"
	arxcli "github.com/bunchhieng/arx/internal/cli"
	"github.com/bunchhieng/arx/internal/config"
	"github.com/bunchhieng/arx/internal/model"
	"github.com/bunchhieng/arx/internal/storage"
	"github.com/bunchhieng/arx/internal/tui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	r := &runner{}
	if err := r.app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runner struct {
	env  *app.Env
	cmds *arxcli.Commands
	log  zerolog.Logger
}

func (r *runner) app() *cli.App {
	return &cli.App{
		Name:    "arx",
		Usage:   "keep track of books, articles, courses and anything else worth coming back to",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the config file",
				EnvVars: []string{"ARX_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn, error or off",
				Value:   "warn",
				EnvVars: []string{"ARX_LOG_LEVEL"},
			},
		},
		Before: r.setup,
		Commands: []*cli.Command{
			r.addCommand(),
			r.listCommand(),
			r.removeCommand(),
			r.editCommand(),
			r.statusCommand("done", "mark a bookmark as done", r.done),
			r.statusCommand("undo", "clear a bookmark's status", r.undo),
			r.statusCommand("open", "open a bookmark's url in the browser", r.open),
			{
				Name:      "copy-url",
				Aliases:   []string{"cp"},
				Usage:     "print a bookmark's url and copy it to the clipboard",
				ArgsUsage: "<id|query>",
				Action: func(c *cli.Context) error {
					arg, err := oneArg(c)
					if err != nil {
						return err
					}
					return r.cmds.CopyURL(arg)
				},
			},
			r.configCommand(),
			r.exportCommand(),
			r.importCommand(),
			{
				Name:  "browse",
				Usage: "browse bookmarks interactively",
				Action: func(c *cli.Context) error {
					return tui.Run(r.env.Store, browser.Open, clipboard.Copy)
				},
			},
			{
				Name:  "version",
				Usage: "show version",
				Action: func(c *cli.Context) error {
					r.cmds.Version(version)
					return nil
				},
			},
		},
	}
}

// setup resolves directories once and loads the config and store every
// command works on.
func (r *runner) setup(c *cli.Context) error {
	r.log = app.NewLogger(os.Stderr, c.String("log-level"))

	dirs, err := app.ResolveDirs()
	if err != nil {
		return err
	}
	env, err := app.Open(dirs, c.String("config"))
	if err != nil {
		return err
	}
	r.log.Debug().
		Str("config", env.ConfigPath).
		Str("data", env.Store.Path()).
		Int("bookmarks", env.Store.Len()).
		Msg("loaded bookmarks")

	r.env = env
	r.cmds = arxcli.NewCommands(env.Store, env.Config, env.ConfigPath)
	r.cmds.Log = r.log
	return nil
}

func oneArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("usage: arx %s %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args().First(), nil
}

func (r *runner) addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a bookmark",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "bookmark url"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "book, article, topic, project, tool, course or other"},
			&cli.StringSliceFlag{Name: "tags", Aliases: []string{"t"}, Usage: "tags, repeat or separate with commas"},
			&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "free-form notes"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "none, pending or done"},
			&cli.BoolFlag{Name: "hidden", Usage: "hide from default listings"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("usage: arx add [flags] <title>")
			}
			nb := storage.NewBookmark{
				Title:  strings.Join(c.Args().Slice(), " "),
				URL:    c.String("url"),
				Tags:   c.StringSlice("tags"),
				Notes:  c.String("notes"),
				Hidden: c.Bool("hidden"),
			}
			if v := c.String("category"); v != "" {
				cat, err := model.ParseCategory(v)
				if err != nil {
					return err
				}
				nb.Category = cat
			}
			if v := c.String("status"); v != "" {
				st, err := model.ParseStatus(v)
				if err != nil {
					return err
				}
				nb.Status = st
			}
			return r.cmds.Add(nb)
		},
	}
}

func (r *runner) listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list bookmarks",
		ArgsUsage: "[urls|notes|hidden]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "only this category"},
			&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "only bookmarks with this tag"},
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "page number"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "include done and hidden bookmarks"},
		},
		Action: func(c *cli.Context) error {
			view, err := storage.ParseView(c.Args().First())
			if err != nil {
				return err
			}
			return r.cmds.List(storage.ListOptions{
				View:     view,
				Category: c.String("category"),
				Tag:      c.String("tag"),
				All:      c.Bool("all"),
				Page:     c.Int("page"),
			})
		},
	}
}

func (r *runner) removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm", "del", "delete"},
		Usage:     "remove bookmarks by id or query",
		ArgsUsage: "<id|query> [id|query...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("usage: arx remove <id|query> [id|query...]")
			}
			return r.cmds.Remove(c.Args().Slice()...)
		},
	}
}

func (r *runner) editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "change fields of a bookmark",
		ArgsUsage: "<id|query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "new title"},
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "new url"},
			&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "new notes"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "new category"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "new status"},
			&cli.BoolFlag{Name: "hidden", Usage: "hide or show (--hidden=false)"},
			&cli.StringSliceFlag{Name: "tags", Aliases: []string{"t"}, Usage: "replace tags"},
		},
		Action: func(c *cli.Context) error {
			arg, err := oneArg(c)
			if err != nil {
				return err
			}
			e, err := editFromFlags(c)
			if err != nil {
				return err
			}
			return r.cmds.Edit(arg, e)
		},
	}
}

func editFromFlags(c *cli.Context) (storage.Edit, error) {
	var e storage.Edit
	for _, name := range []string{"title", "url", "notes"} {
		if !c.IsSet(name) {
			continue
		}
		v := c.String(name)
		switch name {
		case "title":
			e.Title = &v
		case "url":
			e.URL = &v
		case "notes":
			e.Notes = &v
		}
	}
	if c.IsSet("category") {
		cat, err := model.ParseCategory(c.String("category"))
		if err != nil {
			return e, err
		}
		e.Category = &cat
	}
	if c.IsSet("status") {
		st, err := model.ParseStatus(c.String("status"))
		if err != nil {
			return e, err
		}
		e.Status = &st
	}
	if c.IsSet("hidden") {
		hidden := c.Bool("hidden")
		e.Hidden = &hidden
	}
	if c.IsSet("tags") {
		e.Tags = c.StringSlice("tags")
		if e.Tags == nil {
			e.Tags = []string{}
		}
	}
	return e, nil
}

func (r *runner) statusCommand(name, usage string, action func(string) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<id|query>",
		Action: func(c *cli.Context) error {
			arg, err := oneArg(c)
			if err != nil {
				return err
			}
			return action(arg)
		},
	}
}

func (r *runner) done(arg string) error { return r.cmds.Done(arg) }
func (r *runner) undo(arg string) error { return r.cmds.Undo(arg) }
func (r *runner) open(arg string) error { return r.cmds.Open(arg) }

func (r *runner) configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "change where bookmarks are saved and how they are listed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "save-location", Usage: "move the bookmarks file (a directory means <dir>/bookmarks.json)"},
			&cli.IntFlag{Name: "page-by", Usage: "bookmarks per page"},
			&cli.StringFlag{Name: "table-style", Usage: "one of " + config.StyleNames()},
		},
		Action: func(c *cli.Context) error {
			u := config.Update{
				SaveLocation: c.String("save-location"),
				TableStyle:   c.String("table-style"),
			}
			if c.IsSet("page-by") {
				n := c.Int("page-by")
				u.PageBy = &n
			}
			return r.cmds.Config(u)
		},
	}
}

func (r *runner) exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write all bookmarks as JSON to stdout, or to a SQLite file with --db",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite snapshot to write"},
		},
		Action: func(c *cli.Context) error {
			if db := c.String("db"); db != "" {
				return r.cmds.ExportDB(c.Context, db)
			}
			return r.cmds.Export(os.Stdout)
		},
	}
}

func (r *runner) importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "append bookmarks from a JSON file, or from a SQLite file with --db",
		ArgsUsage: "[file.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite snapshot to read"},
		},
		Action: func(c *cli.Context) error {
			if db := c.String("db"); db != "" {
				return r.cmds.ImportDB(c.Context, db)
			}
			arg, err := oneArg(c)
			if err != nil {
				return err
			}
			return r.cmds.Import(arg)
		},
	}
}
