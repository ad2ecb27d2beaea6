package agent

import (
	"github.com/DieOfCode/haproxy-statsd/internal/stats"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Filter selects proxy rows by pxname. Process info rows always pass.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewFilter(include, exclude []string) (*Filter, error) {
	in, err := compile(include)
	if err != nil {
		return nil, errors.Wrap(err, "include_proxies")
	}
	ex, err := compile(exclude)
	if err != nil {
		return nil, errors.Wrap(err, "exclude_proxies")
	}

	return &Filter{include: in, exclude: ex}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (f *Filter) Allow(row stats.Row) bool {
	if f == nil || !row.IsProxy() {
		return true
	}

	pxname, _ := row.Get("pxname")
	if matchAny(f.exclude, pxname) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, pxname)
}

func (f *Filter) Apply(rows []stats.Row) []stats.Row {
	if f == nil || (len(f.include) == 0 && len(f.exclude) == 0) {
		return rows
	}

	kept := make([]stats.Row, 0, len(rows))
	for _, row := range rows {
		if f.Allow(row) {
			kept = append(kept, row)
		}
	}
	return kept
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
