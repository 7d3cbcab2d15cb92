package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bethropolis/tide-rebase/internal/logger"
)

// DefaultCommentChar is git's comment character when core.commentChar is unset.
const DefaultCommentChar = "#"

// Client answers the editor's questions about the repository.
type Client struct {
	runner Runner
	getenv func(string) string
}

// NewClient creates a client over runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner, getenv: os.Getenv}
}

// FileStat is one changed file of a commit.
type FileStat struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// Commit holds what the show-commit view displays.
type Commit struct {
	Hash          string
	Author        string
	AuthorDate    time.Time
	Committer     string
	CommitterDate time.Time
	Subject       string
	Body          string
	Files         []FileStat
}

// Committed reports whether the committer differs from the author.
func (c *Commit) Committed() bool {
	return c.Committer != "" && c.Committer != c.Author
}

const commitFormat = "%H%x00%an <%ae>%x00%aI%x00%cn <%ce>%x00%cI%x00%s%x00%b"

// LoadCommit reads the metadata and file stats of ref.
func (c *Client) LoadCommit(ctx context.Context, ref string) (*Commit, error) {
	if ref == "" {
		return nil, errors.New("no commit reference")
	}
	out, err := c.runner.Run(ctx, "show", "--no-patch", "--format="+commitFormat, ref, "--")
	if err != nil {
		return nil, err
	}
	commit, err := parseCommit(out)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", ref, err)
	}

	stats, err := c.runner.Run(ctx, "show", "--numstat", "--format=", ref, "--")
	if err != nil {
		return nil, err
	}
	commit.Files = parseNumstat(stats)
	logger.DebugTagf("git", "Loaded commit %s with %d files", commit.Hash, len(commit.Files))
	return commit, nil
}

func parseCommit(out string) (*Commit, error) {
	fields := strings.SplitN(strings.TrimRight(out, "\n"), "\x00", 7)
	if len(fields) != 7 {
		return nil, fmt.Errorf("unexpected git show output (%d fields)", len(fields))
	}
	authorDate, err := time.Parse(time.RFC3339, fields[2])
	if err != nil {
		return nil, fmt.Errorf("author date: %w", err)
	}
	committerDate, err := time.Parse(time.RFC3339, fields[4])
	if err != nil {
		return nil, fmt.Errorf("committer date: %w", err)
	}
	return &Commit{
		Hash:          fields[0],
		Author:        fields[1],
		AuthorDate:    authorDate,
		Committer:     fields[3],
		CommitterDate: committerDate,
		Subject:       fields[5],
		Body:          strings.TrimSpace(fields[6]),
	}, nil
}

// parseNumstat reads `git show --numstat` lines: added, deleted, path. Binary files
// report "-" for both counts.
func parseNumstat(out string) []FileStat {
	var files []FileStat
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimRight(ln, "\r")
		parts := strings.SplitN(ln, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		fs := FileStat{Path: parts[2]}
		if parts[0] == "-" && parts[1] == "-" {
			fs.Binary = true
		} else {
			fs.Added, _ = strconv.Atoi(parts[0])
			fs.Deleted, _ = strconv.Atoi(parts[1])
		}
		files = append(files, fs)
	}
	return files
}

// Diff returns the patch of ref without the commit header.
func (c *Client) Diff(ctx context.Context, ref string) (string, error) {
	return c.runner.Run(ctx, "show", "--format=", "--patch", "--no-color", ref, "--")
}

// CommentChar returns core.commentChar, or "#" when it is unset or "auto".
func (c *Client) CommentChar(ctx context.Context) string {
	out, err := c.runner.Run(ctx, "config", "--get", "core.commentChar")
	if err != nil {
		// git exits 1 when the key is unset.
		return DefaultCommentChar
	}
	value := strings.TrimSpace(out)
	if value == "" || value == "auto" {
		return DefaultCommentChar
	}
	return value
}

// Editor returns the command line of the editor git would use, falling back to
// $VISUAL, $EDITOR and vi when git cannot tell. override wins when set.
func (c *Client) Editor(ctx context.Context, override string) []string {
	candidates := []string{override}
	if out, err := c.runner.Run(ctx, "var", "GIT_EDITOR"); err == nil {
		candidates = append(candidates, out)
	} else {
		logger.Debugf("git var GIT_EDITOR failed: %v", err)
	}
	candidates = append(candidates, c.getenv("VISUAL"), c.getenv("EDITOR"))

	for _, candidate := range candidates {
		if args := splitShellWords(strings.TrimSpace(candidate)); len(args) > 0 {
			return args
		}
	}
	return []string{"vi"}
}
