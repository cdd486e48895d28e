// Package normalizer implements the text rewrite pipeline applied to raw
// Catalan corpus transcriptions. The transcription convention annotates
// punctuation and structure with bracketed markers ("[% interrogació]",
// "[% AP]", ...) and inline tokens ("@o", "@s:nom"); normalization resolves
// those markers into plain punctuation and paragraph breaks and removes
// everything else that is bracketed.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/mvives/go_corpus_tools/internal/pool"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// ParagraphBreak is the canonical paragraph separator. Both paragraph
// markers ("[% punt AP]" and "[% AP]") resolve to this same token.
const ParagraphBreak = "\n\n"

// Rule is a single rewrite applied to the whole document text. A rule either
// replaces every occurrence of a literal substring or every match of a
// compiled pattern. Rules run in list order; order matters because earlier
// rules may create or destroy text that later rules match on.
type Rule struct {
	Literal     string
	Pattern     *regexp.Regexp
	Replacement string
}

func (r Rule) apply(text string) string {
	if r.Pattern != nil {
		return r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	return strings.ReplaceAll(text, r.Literal, r.Replacement)
}

var (
	// speakerRe matches "@s" speaker annotations, including the
	// "@s:name" form. Names are Catalan, so the payload class must cover
	// accented letters; \w alone would leave "úria" behind for "@s:Núria".
	speakerRe = regexp.MustCompile(`@s(?::[\p{L}\p{N}_]+)?`)

	// puntAPRe matches the sentence-closing paragraph marker with the
	// single surrounding spaces the transcription convention uses.
	puntAPRe = regexp.MustCompile(` \[% punt AP\] `)

	// apRe matches the plain paragraph marker together with any
	// whitespace around it, so the break it produces is clean.
	apRe = regexp.MustCompile(`\s*\[% AP\]\s*`)

	// bracketRe matches any remaining non-nested bracketed span up to the
	// nearest closing bracket on the same line. An unterminated "[" never
	// matches and is left alone.
	bracketRe = regexp.MustCompile(`\[[^\]\n]*\]`)

	// joinRe matches a line ending in a whitespace-padded lone period, a
	// transcription artifact marking a soft segment break. The whole
	// ending is replaced by a space, joining the line to the next one.
	joinRe = regexp.MustCompile(`[ \t]+\.[ \t]*\n`)
)

// DefaultRules returns the rewrite table for raw Catalan transcriptions, in
// application order: annotation stripping first, then the exact
// marker-to-punctuation table, then the two paragraph markers. Residual
// bracket removal and whitespace canonicalization are fixed trailing stages
// of the pipeline, not rules: they must always run after the table so that
// meaningful markers are resolved before indiscriminate cleanup.
func DefaultRules() []Rule {
	return []Rule{
		{Literal: "@o"},
		{Pattern: speakerRe},
		{Literal: "[% interrogació]", Replacement: "?"},
		{Literal: "[% exclamació]", Replacement: "!"},
		{Literal: "[% suspensius]", Replacement: "..."},
		{Pattern: puntAPRe, Replacement: "." + ParagraphBreak},
		{Pattern: apRe, Replacement: ParagraphBreak},
	}
}

// CatalanNormalizer applies the ordered rewrite pipeline to document text.
// Normalization is a pure function of the input text and the rule table:
// no external state, fully reproducible, and idempotent on its own output.
type CatalanNormalizer struct {
	rules    []Rule
	builders *pool.BuilderPool
}

// Option defines a functional option for configuring a CatalanNormalizer.
type Option func(*CatalanNormalizer)

// WithRules replaces the default rewrite table.
func WithRules(rules []Rule) Option {
	return func(n *CatalanNormalizer) {
		n.rules = rules
	}
}

// WithExtraRules appends rules that run after the default table but before
// residual bracket removal.
func WithExtraRules(rules ...Rule) Option {
	return func(n *CatalanNormalizer) {
		n.rules = append(n.rules, rules...)
	}
}

// NewCatalanNormalizer creates a normalizer with the default Catalan rule
// table unless options say otherwise.
func NewCatalanNormalizer(opts ...Option) ports.Normalizer {
	n := &CatalanNormalizer{
		rules:    DefaultRules(),
		builders: pool.NewBuilderPool(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize runs the full pipeline: the rewrite table, residual bracket
// removal, and whitespace canonicalization, in that order.
func (n *CatalanNormalizer) Normalize(text string) string {
	for _, r := range n.rules {
		text = r.apply(text)
	}
	text = bracketRe.ReplaceAllString(text, "")
	return n.canonicalizeWhitespace(text)
}

// canonicalizeWhitespace joins soft segment breaks, collapses horizontal
// whitespace runs to a single space, trims every line, and collapses runs of
// blank lines to a single blank line. It runs last because the earlier
// stages leave double spaces and stray blank lines behind.
func (n *CatalanNormalizer) canonicalizeWhitespace(text string) string {
	text = joinRe.ReplaceAllString(text, " ")

	sb := n.builders.Get()
	defer n.builders.Put(sb)

	blanks := 0
	wrote := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blanks++
			continue
		}
		if wrote {
			if blanks > 0 {
				sb.WriteString(ParagraphBreak)
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(line)
		wrote = true
		blanks = 0
	}
	return sb.String()
}
