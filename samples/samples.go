// SPDX-License-Identifier: MIT

// Package samples holds example R programs exercising the lexer's happy & error paths.
package samples

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Sample names.
const (
	Correct        = "correct"
	CorrectNumbers = "correct_numbers"
	Errors         = "errors"
	Dots           = "dots"
	Letters        = "letters"
)

const (
	sampleDir = "testdata"
	sampleExt = ".R"
)

// Sample errors.
var (
	ErrUnknownSample = errors.New("unknown sample")
)

var (
	//go:embed testdata/*.R
	files embed.FS

	titles = map[string]string{
		Correct:        "Example: correct code",
		CorrectNumbers: "Example: correct numbers",
		Errors:         "Example: number errors",
		Dots:           "Example: dot usage",
		Letters:        "Example: letters in numbers",
	}
)

// Names lists the available samples, sorted.
func Names() (names []string) {
	names = maps.Keys(titles)
	slices.Sort(names)

	return
}

// Title obtains the display title of a sample.
func Title(name string) (title string, err error) {
	title, ok := titles[name]
	if !ok {
		err = fmt.Errorf("%w: %s", ErrUnknownSample, name)
	}

	return
}

// Get obtains the source of a sample.
func Get(name string) (src string, err error) {
	if _, ok := titles[name]; !ok {
		err = fmt.Errorf("%w: %s", ErrUnknownSample, name)
		return
	}

	content, err := files.ReadFile(path.Join(sampleDir, name+sampleExt))
	if err != nil {
		err = fmt.Errorf("read sample (%s): %w", name, err)
		return
	}
	src = string(content)

	return
}
