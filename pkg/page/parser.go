package page

import (
	"awesome-dragon.science/go/mcmotd/pkg/format/htmlstyle"
	"awesome-dragon.science/go/mcmotd/pkg/format/tokeniser"
	"awesome-dragon.science/go/mcmotd/pkg/log"
)

// Animator runs obfuscation for rendered segments and can stop all of it at once. ClearLocked is called with the
// document lock held
type Animator interface {
	htmlstyle.Animator
	ClearLocked()
}

// Parser renders the formatted text of one element into another
type Parser struct {
	doc  *Document
	anim Animator
	log  *log.Logger
}

// NewParser creates a Parser for doc. anim must use doc.Locker() as its lock
func NewParser(doc *Document, anim Animator, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Discard()
	}

	return &Parser{doc: doc, anim: anim, log: logger}
}

// Parse stops any running obfuscation, reads the text of the source element, and replaces the children of the target
// element with the styled result. If either element is missing nothing is changed and Parse returns false
func (p *Parser) Parse(sourceID, targetID string) bool {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()

	if p.anim != nil {
		p.anim.ClearLocked()
	}

	source := findByID(p.doc.root, sourceID)
	target := findByID(p.doc.root, targetID)

	if source == nil || target == nil {
		p.log.Debugf("not parsing %q into %q: element missing", sourceID, targetID)
		return false
	}

	text := textContent(source)
	segments := tokeniser.Tokenise(text)

	replaceChildren(target, htmlstyle.Render(segments, p.anim))
	p.log.Tracef("parsed %q into %q as %d segments", sourceID, targetID, len(segments))

	return true
}
