package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"

	"github.com/Faultbox/scangif/internal/geometry"
)

var (
	targetRe = regexp.MustCompile(`(?i)(?:target|目标)\s*:\s*([^;,\n]+)`)
	fpsRe    = regexp.MustCompile(`(\d+)\s*(?:fps|帧)`)
	secRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:(?:seconds?|secs?|s)\b|秒)`)
	hexRe    = regexp.MustCompile(`#[0-9a-f]{6}\b`)

	shapeRes = map[geometry.Shape]*regexp.Regexp{
		geometry.ShapeCube:    regexp.MustCompile(`\bcube\b|立方体|正方体`),
		geometry.ShapePyramid: regexp.MustCompile(`\bpyramid\b|金字塔|棱锥`),
		geometry.ShapePrism:   regexp.MustCompile(`\bprism\b|六棱柱|棱柱`),
	}

	opaqueRe      = regexp.MustCompile(`\bopaque\b|不透明`)
	transparentRe = regexp.MustCompile(`\btransparent\b|透明`)
	noGridRe      = regexp.MustCompile(`\bno[\s-]*grid\b|\bwithout\s+grid\b|无网格|不要网格`)
	gridRe        = regexp.MustCompile(`\bgrid\b|网格`)
	noRotateRe    = regexp.MustCompile(`\bno[\s-]*rotation\b|\bstatic\b|不旋转`)
	identifyRe    = regexp.MustCompile(`\bidentify\b|\bsegment(?:ation)?\b|识别|分割`)
)

// ApplyPrompt overrides cfg with the settings a free-text description asks
// for. Full-width characters are folded to their ASCII forms and matching is
// case-insensitive. Text that matches nothing leaves cfg unchanged.
func ApplyPrompt(cfg *Config, prompt string) error {
	s := width.Fold.String(prompt)
	if strings.TrimSpace(s) == "" {
		return nil
	}

	// The target name keeps its case and is removed so its words cannot
	// trigger other keywords.
	if m := targetRe.FindStringSubmatchIndex(s); m != nil {
		cfg.Labels.Target = strings.TrimSpace(s[m[2]:m[3]])
		s = s[:m[0]] + s[m[1]:]
	}
	s = cases.Fold().String(s)

	if shape, ok := firstShape(s); ok {
		cfg.Animation.Shape = shape
	}

	if opaqueRe.MatchString(s) {
		cfg.Output.Transparent = false
	} else if transparentRe.MatchString(s) {
		cfg.Output.Transparent = true
	}

	if noGridRe.MatchString(s) {
		cfg.Style.ShowGrid = false
	} else if gridRe.MatchString(s) {
		cfg.Style.ShowGrid = true
	}

	if noRotateRe.MatchString(s) {
		cfg.Animation.Rotate = false
	}

	if identifyRe.MatchString(s) {
		cfg.Animation.Identify = true
	}

	if m := fpsRe.FindStringSubmatch(s); m != nil {
		fps, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("fps %q: %w", m[1], err)
		}
		cfg.Animation.FPS = fps
		// Keep "12 fps" from also reading as a duration.
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := secRe.FindStringSubmatch(s); m != nil {
		d, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fmt.Errorf("duration %q: %w", m[1], err)
		}
		cfg.Animation.Duration = d
	}

	if m := hexRe.FindString(s); m != "" {
		cfg.Style.Primary = strings.ToUpper(m)
	}
	return nil
}

// firstShape returns the shape named earliest in s.
func firstShape(s string) (geometry.Shape, bool) {
	var (
		best  geometry.Shape
		index = -1
	)
	for _, shape := range []geometry.Shape{geometry.ShapeCube, geometry.ShapePyramid, geometry.ShapePrism} {
		loc := shapeRes[shape].FindStringIndex(s)
		if loc != nil && (index < 0 || loc[0] < index) {
			best, index = shape, loc[0]
		}
	}
	return best, index >= 0
}
