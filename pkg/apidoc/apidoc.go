// Package apidoc scans a pre-rendered API documentation tree for anchors so
// instruction and format names can link into it.
//
// An anchor is an element of the form
//
//	<a class="anchor" id="a3f..." args="(add)"></a>
//
// and maps its args value, parentheses stripped, to <file>#<id>.
package apidoc

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Anchors maps a symbol name to a link target. A nil *Anchors is valid and
// resolves nothing.
type Anchors struct {
	links map[string]string
}

// Link returns the link target for name.
func (a *Anchors) Link(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	l, ok := a.links[name]
	return l, ok
}

// Len is the number of symbols with an anchor.
func (a *Anchors) Len() int {
	if a == nil {
		return 0
	}
	return len(a.links)
}

// Names lists the anchored symbols, sorted.
func (a *Anchors) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.links))
	for n := range a.links {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load scans root, which may be a single HTML file or a directory walked
// for *.html and *.htm files. An empty root disables API-doc links; a
// missing root does too, with a log line rather than an error.
func Load(root string, logger *slog.Logger) (*Anchors, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With(slog.String("component", "apidoc"))
	if root == "" {
		return nil, nil
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("API doc root not found, links disabled", slog.String("root", root))
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading API doc root %s", root)
	}

	a := &Anchors{links: make(map[string]string)}
	if !info.IsDir() {
		if err := a.scanFile(root, filepath.ToSlash(root), log); err != nil {
			return nil, err
		}
		log.Debug("anchors loaded", slog.Int("count", a.Len()))
		return a, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
		default:
			return nil
		}
		return a.scanFile(path, filepath.ToSlash(path), log)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning API doc root %s", root)
	}
	log.Debug("anchors loaded", slog.Int("count", a.Len()))
	return a, nil
}

func (a *Anchors) scanFile(path, target string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return a.scan(f, target, log)
}

// scan reads anchors from one document. The first anchor seen for a
// symbol wins.
func (a *Anchors) scan(r io.Reader, target string, log *slog.Logger) error {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return nil
			}
			return errors.Wrapf(z.Err(), "parsing %s", target)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			var class, id, args string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "class":
					class = attr.Val
				case "id":
					id = attr.Val
				case "args":
					args = attr.Val
				}
			}
			if class != "anchor" || id == "" {
				continue
			}
			args = strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(args))
			if args == "" {
				continue
			}
			if _, ok := a.links[args]; ok {
				log.Debug("duplicate anchor ignored", slog.String("symbol", args), slog.String("file", target))
				continue
			}
			a.links[args] = target + "#" + id
		}
	}
}
