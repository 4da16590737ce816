package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bunchhieng/arx/internal/browser"
	"github.com/bunchhieng/arx/internal/clipboard"
	"github.com/bunchhieng/arx/internal/config"
	"github.com/bunchhieng/arx/internal/model"
	"github.com/bunchhieng/arx/internal/prompt"
	"github.com/bunchhieng/arx/internal/storage"
	"github.com/rs/zerolog"
)

const maxRemovedTitleLen = 24

// Commands handles all CLI command execution.
type Commands struct {
	store   *storage.Store
	cfg     *config.Config
	cfgPath string

	// Out receives command output and prompts.
	Out io.Writer
	// In answers confirmation prompts.
	In io.Reader
	// OpenURL launches a browser.
	OpenURL func(url string) error
	// CopyText writes to the clipboard.
	CopyText func(text string) error
	Log      zerolog.Logger

	in *bufio.Reader
}

// NewCommands creates a new Commands instance writing to stdout.
func NewCommands(s *storage.Store, cfg *config.Config, cfgPath string) *Commands {
	return &Commands{
		store:    s,
		cfg:      cfg,
		cfgPath:  cfgPath,
		Out:      os.Stdout,
		In:       os.Stdin,
		OpenURL:  browser.Open,
		CopyText: clipboard.Copy,
		Log:      zerolog.Nop(),
	}
}

func (c *Commands) save() error {
	if err := c.store.Save(); err != nil {
		return err
	}
	c.Log.Debug().Str("path", c.store.Path()).Int("bookmarks", c.store.Len()).Msg("saved bookmarks")
	return nil
}

func (c *Commands) reader() *bufio.Reader {
	if c.in == nil {
		c.in = bufio.NewReader(c.In)
	}
	return c.in
}

// Add adds a new bookmark.
func (c *Commands) Add(nb storage.NewBookmark) error {
	b, err := c.store.Add(nb)
	if err != nil {
		return err
	}
	if err := c.save(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Bookmark with ID #%d successfully added!\n", b.ID)
	return nil
}

// List prints one page of the filtered bookmarks. An empty first page is
// reported as "No bookmarks found."; any later page past the end is an error.
func (c *Commands) List(opts storage.ListOptions) error {
	if c.store.Len() == 0 {
		fmt.Fprintln(c.Out, "You have no bookmarks yet...")
		return nil
	}

	if opts.PageSize <= 0 {
		opts.PageSize = c.cfg.PageSize()
	}
	page, err := c.store.List(opts)
	if err != nil {
		var pnf *model.PageNotFoundError
		if errors.As(err, &pnf) && pnf.Page == 1 {
			fmt.Fprintln(c.Out, "No bookmarks found.")
			return nil
		}
		return err
	}
	c.Log.Debug().Str("view", opts.View.String()).Int("matched", page.Matched).Int("page", page.Number).Msg("listing bookmarks")

	fmt.Fprintln(c.Out, renderTable(page.Bookmarks, opts.View, c.cfg.TableStyle.Or(config.StyleUTF8Full)))
	fmt.Fprintf(c.Out, "Showing page %d out of %d (specify with -p <num>)\n", page.Number, page.Total)
	return nil
}

// Remove deletes bookmarks by ID or fuzzy query. Fuzzy matches are confirmed first.
func (c *Commands) Remove(args ...string) error {
	if len(args) == 0 {
		return errors.New("at least one ID or query required")
	}

	confirm := func(b model.Bookmark) (bool, error) {
		q := fmt.Sprintf("Confirm removing '%s' from your bookmarks", truncateString(b.Title, maxRemovedTitleLen))
		return prompt.Confirm(c.reader(), c.Out, q)
	}

	removed, err := c.store.Remove(storage.ParseQueries(args), confirm)
	if err != nil {
		return err
	}
	if err := c.save(); err != nil {
		return err
	}

	for _, b := range removed {
		fmt.Fprintf(c.Out, "Successfully removed #%d - %s\n", b.ID, truncateString(b.Title, maxRemovedTitleLen))
	}
	return nil
}

// Edit updates fields of one bookmark.
func (c *Commands) Edit(arg string, e storage.Edit) error {
	b, err := c.store.Edit(storage.ParseQuery(arg), e)
	if err != nil {
		return err
	}
	if err := c.save(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Bookmark #%d updated.\n", b.ID)
	return nil
}

// Done marks a bookmark as done.
func (c *Commands) Done(arg string) error {
	b, err := c.store.MarkDone(storage.ParseQuery(arg))
	if err != nil {
		return err
	}
	if err := c.save(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Marked #%d - %s as done.\n", b.ID, b.Title)
	return nil
}

// Undo clears a bookmark's status.
func (c *Commands) Undo(arg string) error {
	b, err := c.store.SetStatus(storage.ParseQuery(arg), model.StatusNone)
	if err != nil {
		return err
	}
	if err := c.save(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Cleared status of #%d - %s.\n", b.ID, b.Title)
	return nil
}

func (c *Commands) findURL(arg string) (string, error) {
	b, fuzzy, err := c.store.Find(storage.ParseQuery(arg))
	if err != nil {
		return "", err
	}
	c.Log.Debug().Int("id", b.ID).Bool("fuzzy", fuzzy).Msg("resolved bookmark")
	if !b.HasURL() {
		return "", &model.NoURLError{ID: b.ID}
	}
	return b.URL, nil
}

// Open opens a bookmark's URL in the default browser.
func (c *Commands) Open(arg string) error {
	url, err := c.findURL(arg)
	if err != nil {
		return err
	}
	if err := c.OpenURL(url); err != nil {
		return fmt.Errorf("%w: %v", model.ErrOpen, err)
	}
	fmt.Fprintf(c.Out, "Opened: %s\n", url)
	return nil
}

// CopyURL prints a bookmark's URL and copies it to the clipboard.
func (c *Commands) CopyURL(arg string) error {
	url, err := c.findURL(arg)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, url)
	if err := c.CopyText(url); err != nil {
		return fmt.Errorf("%w: %v", model.ErrClipboard, err)
	}
	return nil
}

// Config applies u, moving the data file when the save location changes.
// If the config cannot be saved the data file is moved back.
func (c *Commands) Config(u config.Update) error {
	previous, err := c.cfg.Apply(u)
	if err != nil {
		return err
	}
	if err := c.cfg.Save(c.cfgPath); err != nil {
		if rerr := c.cfg.Rollback(previous); rerr != nil {
			return fmt.Errorf("%w (restoring %s failed: %v)", err, previous, rerr)
		}
		return err
	}

	if previous != "" {
		c.store.SetPath(c.cfg.SaveLocation)
		c.Log.Info().Str("from", previous).Str("to", c.cfg.SaveLocation).Msg("relocated bookmarks")
		fmt.Fprintf(c.Out, "Bookmarks moved to %s\n", c.cfg.SaveLocation)
	}
	fmt.Fprintln(c.Out, "Config updated.")
	return nil
}

// Export writes all bookmarks as JSON.
func (c *Commands) Export(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c.store.Export()); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// ExportDB writes all bookmarks into a SQLite snapshot at dbPath.
func (c *Commands) ExportDB(ctx context.Context, dbPath string) error {
	snap, err := storage.OpenSnapshot(dbPath)
	if err != nil {
		return err
	}
	defer snap.Close()

	if err := snap.Write(ctx, c.store.Path(), c.store.Export()); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Exported %d bookmark(s) to %s\n", c.store.Len(), dbPath)
	return nil
}

// Import appends bookmarks from a JSON file.
func (c *Commands) Import(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var bookmarks []model.Bookmark
	if err := json.NewDecoder(file).Decode(&bookmarks); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return c.importBookmarks(bookmarks)
}

// ImportDB appends bookmarks from a SQLite snapshot.
func (c *Commands) ImportDB(ctx context.Context, dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	snap, err := storage.OpenSnapshot(dbPath)
	if err != nil {
		return err
	}
	defer snap.Close()

	bookmarks, err := snap.Read(ctx)
	if err != nil {
		return err
	}
	return c.importBookmarks(bookmarks)
}

func (c *Commands) importBookmarks(bookmarks []model.Bookmark) error {
	added := c.store.Import(bookmarks)
	if err := c.save(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Imported %d bookmark(s).\n", added)
	if skipped := len(bookmarks) - added; skipped > 0 {
		fmt.Fprintf(c.Out, "Skipped %d duplicate or untitled bookmark(s).\n", skipped)
	}
	return nil
}

// Version prints the version.
func (c *Commands) Version(version string) {
	fmt.Fprintf(c.Out, "arx version %s\n", version)
}
