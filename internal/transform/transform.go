// Package transform compiles script modules to compact, engine-compatible
// source using esbuild. For the es5 target, ES2015 syntax that esbuild
// cannot lower is rewritten by the lower package first.
package transform

import (
	"errors"
	"fmt"
	"strings"

	esbuildapi "github.com/evanw/esbuild/pkg/api"

	oerrors "github.com/opmodel/dukbin/internal/errors"
	"github.com/opmodel/dukbin/internal/lower"
)

// Transformer turns one script module into compact source.
type Transformer interface {
	Transform(path string, source []byte) (string, error)
}

var targets = map[string]esbuildapi.Target{
	"es5":    esbuildapi.ES5,
	"es2015": esbuildapi.ES2015,
	"es2016": esbuildapi.ES2016,
	"es2017": esbuildapi.ES2017,
	"es2018": esbuildapi.ES2018,
	"es2019": esbuildapi.ES2019,
	"es2020": esbuildapi.ES2020,
	"es2021": esbuildapi.ES2021,
	"es2022": esbuildapi.ES2022,
	"es2023": esbuildapi.ES2023,
	"es2024": esbuildapi.ES2024,
	"esnext": esbuildapi.ESNext,
}

// ESBuild is the esbuild-backed Transformer. It lowers syntax to the
// configured target and minifies whitespace, syntax and identifiers.
//
// For es5, the source is first normalized to ES2015 by esbuild, then block
// scoping, classes, destructuring, spread, parameter defaults and for-of
// are rewritten by lower.ES5, and only then minified.
type ESBuild struct {
	target esbuildapi.Target
}

// NewESBuild returns a Transformer for the named language target
// (e.g. "es5", "es2020", "esnext").
func NewESBuild(target string) (*ESBuild, error) {
	t, ok := targets[strings.ToLower(target)]
	if !ok {
		return nil, oerrors.NewConfigError(
			fmt.Sprintf("unsupported script target %q", target),
			"",
			"Use es5, es2015 through es2024, or esnext",
		)
	}
	return &ESBuild{target: t}, nil
}

// Transform compiles source. Any esbuild error is returned as a
// TransformError naming path.
func (e *ESBuild) Transform(path string, source []byte) (string, error) {
	code := string(source)
	if e.target == esbuildapi.ES5 {
		normalized := esbuildapi.Transform(code, esbuildapi.TransformOptions{
			Sourcefile: path,
			Loader:     esbuildapi.LoaderJS,
			Format:     esbuildapi.FormatCommonJS,
			Target:     esbuildapi.ES2015,
			Sourcemap:  esbuildapi.SourceMapNone,
		})
		if len(normalized.Errors) > 0 {
			return "", &oerrors.TransformError{FilePath: path, Cause: messagesError(normalized.Errors)}
		}
		lowered, err := lower.ES5(path, normalized.Code)
		if err != nil {
			return "", &oerrors.TransformError{FilePath: path, Cause: err}
		}
		code = lowered
	}

	result := esbuildapi.Transform(code, esbuildapi.TransformOptions{
		Sourcefile:        path,
		Loader:            esbuildapi.LoaderJS,
		Format:            esbuildapi.FormatCommonJS,
		Target:            e.target,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcemap:         esbuildapi.SourceMapNone,
	})

	if len(result.Errors) > 0 {
		return "", &oerrors.TransformError{FilePath: path, Cause: messagesError(result.Errors)}
	}
	return strings.TrimRight(string(result.Code), "\n"), nil
}

func messagesError(msgs []esbuildapi.Message) error {
	errs := make([]error, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Location != nil {
			errs = append(errs, fmt.Errorf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text))
			continue
		}
		errs = append(errs, errors.New(msg.Text))
	}
	return errors.Join(errs...)
}
