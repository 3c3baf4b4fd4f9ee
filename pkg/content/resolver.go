package content

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// Resolver reads content records from an fs.FS. It is safe for concurrent use.
type Resolver struct {
	fsys    fs.FS
	dirs    map[Kind]string
	exts    []string
	workers int
	logger  *slog.Logger
	cache   Cache
	group   singleflight.Group
}

// NewResolver creates a resolver rooted at fsys.
func NewResolver(fsys fs.FS, opts ...Option) *Resolver {
	r := &Resolver{
		fsys:    fsys,
		dirs:    make(map[Kind]string, len(defaultDirs)),
		exts:    []string{".mdx", ".md"},
		workers: 8,
		logger:  slog.New(slog.DiscardHandler),
	}
	for k, d := range defaultDirs {
		r.dirs[k] = d
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the records of kind in locale l, newest first, narrowed by rng.
// Only an unknown kind or a cancelled context produce an error.
func (r *Resolver) List(ctx context.Context, kind Kind, l locale.Locale, rng *Range) ([]Record, error) {
	records, err := r.load(ctx, kind, l)
	if err != nil {
		return nil, err
	}
	return rng.apply(records), nil
}

// GetBySlug returns the record for slug in locale l, or nil when it does not exist there.
func (r *Resolver) GetBySlug(ctx context.Context, kind Kind, s string, l locale.Locale) (*Record, error) {
	if !slug.IsValid(s) {
		return nil, nil
	}
	records, err := r.load(ctx, kind, l)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Slug == s {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// GetBothLocales looks slug up in each locale independently. A missing side is nil.
func (r *Resolver) GetBothLocales(ctx context.Context, kind Kind, s string) Pair {
	var p Pair
	var err error
	if p.Primary, err = r.GetBySlug(ctx, kind, s, locale.EN); err != nil {
		r.logger.DebugContext(ctx, "primary lookup failed", logger.Kind(kind.String()), logger.Slug(s), logger.Error(err))
	}
	if p.Secondary, err = r.GetBySlug(ctx, kind, s, locale.FR); err != nil {
		r.logger.DebugContext(ctx, "secondary lookup failed", logger.Kind(kind.String()), logger.Slug(s), logger.Error(err))
	}
	return p
}

// Entry summarises one slug across locales.
type Entry struct {
	Slug        string
	PublishedAt Date
	Locales     []locale.Locale
}

// AllSlugs returns every slug of kind present in at least one locale, newest first.
// The publish date is taken from the EN record when both exist.
func (r *Resolver) AllSlugs(ctx context.Context, kind Kind) ([]Entry, error) {
	index := map[string]int{}
	var out []Entry
	for _, l := range locale.All() {
		records, err := r.load(ctx, kind, l)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if i, ok := index[rec.Slug]; ok {
				out[i].Locales = append(out[i].Locales, l)
				continue
			}
			index[rec.Slug] = len(out)
			out = append(out, Entry{Slug: rec.Slug, PublishedAt: rec.Metadata.PublishedAt, Locales: []locale.Locale{l}})
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := b.PublishedAt.Compare(a.PublishedAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	return out, nil
}

type candidate struct {
	name string
	slug string
}

func (r *Resolver) load(ctx context.Context, kind Kind, l locale.Locale) ([]Record, error) {
	dir, ok := r.dirs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.WarnContext(ctx, "content directory unreadable", logger.Kind(kind.String()), logger.Error(err))
		}
		return []Record{}, nil
	}

	files := r.match(entries, l)
	key := string(kind) + ":" + l.String()
	if r.cache != nil {
		key += ":" + fingerprint(entries, files)
		if cached, ok := r.cache.Get(ctx, key); ok {
			return slices.Clone(cached), nil
		}
	}

	// The fill is shared by every caller waiting on key, so it must not die
	// with the context of whichever caller happened to start it.
	fillCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		records, err := r.readAll(fillCtx, kind, dir, l, files)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			r.cache.Set(fillCtx, key, records)
		}
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]Record)), nil
	}
}

// match keeps regular files with a known extension that belong to l.
func (r *Resolver) match(entries []fs.DirEntry, l locale.Locale) []candidate {
	var out []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if !slices.Contains(r.exts, ext) {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		fileLocale := locale.EN
		if strings.HasSuffix(stem, locale.FileSuffixFR) {
			fileLocale = locale.FR
			stem = strings.TrimSuffix(stem, locale.FileSuffixFR)
		}
		if fileLocale != l {
			continue
		}
		out = append(out, candidate{name: name, slug: stem})
	}
	return out
}

func (r *Resolver) readAll(ctx context.Context, kind Kind, dir string, l locale.Locale, files []candidate) ([]Record, error) {
	parsed := make([]*Record, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := r.readFile(dir, f, l)
			if err != nil {
				r.logger.WarnContext(ctx, "skipping content file",
					logger.Kind(kind.String()),
					logger.File(f.name),
					logger.Error(err),
				)
				return nil
			}
			parsed[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(parsed))
	for _, rec := range parsed {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		if c := b.Metadata.PublishedAt.Compare(a.Metadata.PublishedAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	return records, nil
}

func (r *Resolver) readFile(dir string, f candidate, l locale.Locale) (*Record, error) {
	if !slug.IsValid(f.slug) {
		return nil, fmt.Errorf("invalid slug %q", f.slug)
	}
	data, err := fs.ReadFile(r.fsys, path.Join(dir, f.name))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return &Record{
		Slug:     f.slug,
		Locale:   l,
		Metadata: meta,
		Body:     string(body),
	}, nil
}

func fingerprint(entries []fs.DirEntry, files []candidate) string {
	h := fnv.New64a()
	for _, f := range files {
		h.Write([]byte(f.name))
		for _, e := range entries {
			if e.Name() != f.name {
				continue
			}
			if info, err := e.Info(); err == nil {
				h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
				h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
			}
			break
		}
	}
	return strconv.FormatUint(h.Sum64(), 36)
}
