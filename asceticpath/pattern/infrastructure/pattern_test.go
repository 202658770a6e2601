package pattern

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/ascetic-path-go/asceticpath/option"
	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
	"github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain/definition"
)

func mustNew(t *testing.T, strexp any, opts ...Option) *Pattern {
	t.Helper()
	pt, err := New(strexp, opts...)
	require.NoError(t, err)
	return pt
}

func TestPatternFromString(t *testing.T) {
	pt := mustNew(t, "/:controller/:action")

	assert.True(t, pt.Anchored())
	assert.Equal(t, DefaultSeparators, pt.Separators())
	assert.Empty(t, pt.Requirements())
	assert.Equal(t, []string{"controller", "action"}, pt.Names())
	assert.Equal(t, []string{"controller", "action"}, pt.RequiredNames())
	assert.Empty(t, pt.OptionalNames())
	assert.Equal(t, []int{0, 0, 0}, pt.Offsets())
	assert.Equal(t, `\A/([^\/\.\?]+)/([^\/\.\?]+)\z`, pt.Source())
	assert.Equal(t, pt.Source(), pt.Regexp().String())

	md, ok := pt.Match("/users/show")
	require.True(t, ok)
	assert.Equal(t, 3, md.Len())
	assert.Equal(t, option.Some("users"), md.At(1))
	assert.Equal(t, option.Some("show"), md.At(2))
	assert.Equal(t, []string{"users", "show"}, md.Captures())
	assert.Equal(t, map[string]string{"controller": "users", "action": "show"}, md.Params())
	assert.Equal(t, "/users/show", md.String())
	assert.Equal(t, "", md.PostMatch())

	for _, candidate := range []string{"/users", "/users/show/1", "/users/show.json", "users/show", ""} {
		_, ok := pt.Match(candidate)
		assert.False(t, ok, candidate)
		assert.False(t, pt.MatchString(candidate), candidate)
	}
}

func TestPatternOptionalGroup(t *testing.T) {
	pt := mustNew(t, "/:controller(/:action)")
	assert.Equal(t, []string{"controller"}, pt.RequiredNames())
	assert.Equal(t, []string{"action"}, pt.OptionalNames())

	t.Run("absent", func(t *testing.T) {
		md, ok := pt.Match("/users")
		require.True(t, ok)
		assert.Equal(t, "users", md.Get(1))
		assert.True(t, md.At(2).IsNothing())
		assert.Equal(t, []string{"users", ""}, md.Captures())
		assert.Equal(t, map[string]string{"controller": "users"}, md.Params())
	})

	t.Run("present", func(t *testing.T) {
		md, ok := pt.Match("/users/show")
		require.True(t, ok)
		assert.Equal(t, option.Some("show"), md.At(2))
	})

	t.Run("out of range", func(t *testing.T) {
		md, ok := pt.Match("/users")
		require.True(t, ok)
		assert.True(t, md.At(0).IsNothing())
		assert.True(t, md.At(3).IsNothing())
		assert.True(t, md.At(-1).IsNothing())
	})
}

func TestPatternFormat(t *testing.T) {
	pt := mustNew(t, "/:controller/:action.:format")
	md, ok := pt.Match("/users/show.json")
	require.True(t, ok)
	assert.Equal(t, []string{"users", "show", "json"}, md.Captures())
}

func TestPatternStar(t *testing.T) {
	pt := mustNew(t, "/files/*path")
	assert.Equal(t, []string{"path"}, pt.Names())
	assert.Equal(t, []int{0}, pt.Offsets())

	md, ok := pt.Match("/files/a/b/c.txt")
	require.True(t, ok)
	assert.Equal(t, option.Some("a/b/c.txt"), md.At(1))
	assert.Equal(t, map[string]string{"path": "a/b/c.txt"}, md.Params())

	_, ok = pt.Match("/files/")
	assert.False(t, ok)
}

func TestPatternRequirementGroupsDoNotShiftParameters(t *testing.T) {
	exp := NewStrexp("/:range/:name", map[string]string{"range": `(\d+)-(\d+)`}, []string{"/"})
	pt := mustNew(t, exp)

	assert.Equal(t, []int{0, 2, 2}, pt.Offsets())
	assert.Equal(t, 4, pt.Regexp().NumSubexp())

	md, ok := pt.Match("/10-20/report")
	require.True(t, ok)
	assert.Equal(t, "10-20", md.Get(1))
	assert.Equal(t, "report", md.Get(2))
	assert.Equal(t, map[string]string{"range": "10-20", "name": "report"}, md.Params())

	_, ok = pt.Match("/ten/report")
	assert.False(t, ok)
}

func TestPatternStarAfterRequirement(t *testing.T) {
	exp := NewStrexp("/:lang/*rest", map[string]string{"lang": `(en|de)`}, []string{"/"})
	pt := mustNew(t, exp)

	assert.Equal(t, []string{"lang", "rest"}, pt.Names())
	assert.Equal(t, []int{0, 1}, pt.Offsets())

	md, ok := pt.Match("/de/docs/intro")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"lang": "de", "rest": "docs/intro"}, md.Params())
}

func TestPatternProbeCounterAgreesWithNative(t *testing.T) {
	requirements := map[string]string{"a": `(x)(y)`, "c": `((p)|q)`, "d": `\d+`}
	exp := NewStrexp("/:a/:b/:c(/:d)", requirements, []string{"/"})

	native := mustNew(t, exp)
	probe := mustNew(t, exp, WithCaptureCounter(ProbeCaptureCounter{}))

	assert.Equal(t, []int{0, 2, 2, 4, 4}, native.Offsets())
	assert.Equal(t, native.Offsets(), probe.Offsets())
}

func TestPatternUnanchored(t *testing.T) {
	pt := mustNew(t, NewStrexp("/:controller", nil, []string{"/", "."}, Unanchored()))
	assert.False(t, pt.Anchored())
	assert.Equal(t, `\A/([^\/\.]+)`, pt.Source())

	md, ok := pt.Match("/users/show")
	require.True(t, ok)
	assert.Equal(t, "users", md.Get(1))
	assert.Equal(t, "/users", md.String())
	assert.Equal(t, "/show", md.PostMatch())
}

func TestPatternUnanchoredRequirementIsLazy(t *testing.T) {
	pt := mustNew(t, NewStrexp("/:id", map[string]string{"id": `\d+`}, []string{"/"}, Unanchored()))
	md, ok := pt.Match("/123/edit")
	require.True(t, ok)
	assert.Equal(t, "1", md.Get(1))
	assert.Equal(t, "23/edit", md.PostMatch())

	anchored := mustNew(t, NewStrexp("/:id", map[string]string{"id": `\d+`}, []string{"/"}))
	md, ok = anchored.Match("/123")
	require.True(t, ok)
	assert.Equal(t, "123", md.Get(1))
}

func TestPatternLazyRequirement(t *testing.T) {
	pt := mustNew(t, NewStrexp("/:id", map[string]string{"id": `\d+?`}, []string{"/"}))
	assert.Equal(t, `\A/(\d+?)\z`, pt.Source())

	md, ok := pt.Match("/123")
	require.True(t, ok)
	assert.Equal(t, "123", md.Get(1))
}

func TestPatternCustomSeparators(t *testing.T) {
	pt := mustNew(t, NewStrexp("/:name", nil, []string{"/"}))
	md, ok := pt.Match("/report.pdf")
	require.True(t, ok)
	assert.Equal(t, "report.pdf", md.Get(1))

	pt = mustNew(t, &Strexp{Path: "/:name", Separators: nil, Anchor: true})
	assert.Equal(t, `\A/(.+)\z`, pt.Source())
}

func TestPatternCompileExternalTree(t *testing.T) {
	root := p.Path(p.Slash(p.Literal("users")), p.Slash(p.Symbol(":id")))
	pt, err := Compile(root, map[string]string{"id": `[0-9a-f]{8}`}, "/", true)
	require.NoError(t, err)
	assert.Equal(t, root, pt.Spec())
	assert.Equal(t, `\A/users/([0-9a-f]{8}?)\z`, pt.Source())
	assert.True(t, pt.MatchString("/users/deadbeef"))
}

func TestPatternWithParser(t *testing.T) {
	parsed := 0
	parser := p.ParserFunc(func(text string) (p.Node, error) {
		parsed++
		return definition.Parse(text)
	})
	pt := mustNew(t, "/:id", WithParser(parser))
	assert.Equal(t, 1, parsed)
	assert.Equal(t, []string{"id"}, pt.Names())
}

func TestPatternErrors(t *testing.T) {
	t.Run("unsupported expression", func(t *testing.T) {
		for _, strexp := range []any{42, nil, []byte("/:id"), (*Strexp)(nil)} {
			_, err := New(strexp)
			assert.True(t, errors.Is(err, ErrUnsupportedExpression), fmt.Sprintf("%T", strexp))
		}
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := New("/:controller(/:action")
		var parseErr *definition.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 12, parseErr.Position)
	})

	t.Run("invalid requirements are all reported", func(t *testing.T) {
		exp := NewStrexp("/:a/:b/:c", map[string]string{"a": `(`, "b": `\d+`, "c": `[`}, nil)
		_, err := New(exp)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRequirement))

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 2)

		var reqErr *RequirementError
		require.ErrorAs(t, merr.Errors[0], &reqErr)
		assert.Equal(t, "a", reqErr.Name)
		require.ErrorAs(t, merr.Errors[1], &reqErr)
		assert.Equal(t, "c", reqErr.Name)
	})

	t.Run("requirements of unknown names are ignored", func(t *testing.T) {
		_, err := New(NewStrexp("/:id", map[string]string{"other": `(`}, nil))
		assert.NoError(t, err)
	})
}

func TestPatternMatchPath(t *testing.T) {
	pt := mustNew(t, "/:controller/:action")

	params, err := pt.MatchPath("/users/show")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"controller": "users", "action": "show"}, params)

	params, err = pt.MatchPath("/users")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"controller": "users"}, params)

	_, err = pt.MatchPath("/users.show")
	var syntaxErr *p.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "/", syntaxErr.Expected)
	assert.Equal(t, ".", syntaxErr.Actual)
	assert.Equal(t, 7, syntaxErr.Pos)
	assert.Equal(t, "/users", syntaxErr.After)

	params, err = pt.MatchTokens(definition.NewScanner("/posts/index"))
	require.NoError(t, err)
	assert.Equal(t, "index", params["action"])
}

func TestPatternMatchPathQuotedLiterals(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		expected  map[string]string
	}{
		{"/a+b", "/a+b", map[string]string{}},
		{"/price$/:id", "/price$/7", map[string]string{"id": "7"}},
		{"/(c++)/:file", "/c++/main", map[string]string{"file": "main"}},
		{"/v1.0/:id", "/v1.0/42", map[string]string{"id": "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pt := mustNew(t, tt.pattern)
			assert.True(t, pt.MatchString(tt.candidate))

			params, err := pt.MatchPath(tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
		})
	}

	t.Run("literal mismatch", func(t *testing.T) {
		pt := mustNew(t, "/a+b")
		_, err := pt.MatchPath("/a-b")
		assert.True(t, errors.Is(err, p.ErrLiteralMismatch))
	})

	t.Run("token stream keeps quoted literals", func(t *testing.T) {
		pt := mustNew(t, "/a+b")
		_, err := pt.MatchTokens(definition.NewScanner("/a+b"))
		assert.True(t, errors.Is(err, p.ErrLiteralMismatch))
	})
}

func TestPatternConcurrentMatch(t *testing.T) {
	pt := mustNew(t, "/:controller(/:action(/:id))")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate := fmt.Sprintf("/users/show/%d", i)
			md, ok := pt.Match(candidate)
			if assert.True(t, ok) {
				assert.Equal(t, fmt.Sprint(i), md.Get(3))
			}
			assert.Equal(t, []string{"controller", "action", "id"}, pt.Names())
		}(i)
	}
	wg.Wait()
}
