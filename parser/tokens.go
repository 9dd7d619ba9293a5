package parser

import (
	"regexp"

	"github.com/skinnyjames/hokusai-pocket/lexer"
)

const (
	wordTok = iota
	methodTok
	staticTok
	floatTok
	intTok
	anyTok
	attrStartTok
	attrEndTok
	spreadTok
	lbrackTok
	rbrackTok
	lparenTok
	rparenTok
	commaTok
	semiTok
	colonTok
	equalTok
	poundTok
	quoteTok
	dotTok
	atTok
)

var (
	tokenDefs = []lexer.TokenDef{
		lexer.Def(wordTok, "word", `[A-Za-z][A-Za-z0-9_-]*`),
		lexer.Def(methodTok, "name", `[A-Za-z][A-Za-z0-9_]*`),
		lexer.Def(staticTok, "function name", `[A-Za-z0-9_\-,\.]*`),
		lexer.Def(floatTok, "float", `\d+\.\d+`),
		lexer.Def(intTok, "integer", `[0-9]+`),
		lexer.Def(anyTok, "value", `[^"\n;()]+`),
		lexer.Def(attrStartTok, `"{"`, ` *\{`),
		lexer.Def(attrEndTok, `"}"`, `\} *`),
		lexer.Def(spreadTok, `"..."`, `\.\.\.`),
		lexer.Def(lbrackTok, `"["`, `\[`),
		lexer.Def(rbrackTok, `"]"`, `\]`),
		lexer.Def(lparenTok, `"("`, `\(`),
		lexer.Def(rparenTok, `")"`, `\)`),
		lexer.Def(commaTok, `","`, `,`),
		lexer.Def(semiTok, `";"`, `;`),
		lexer.Def(colonTok, `":"`, `:`),
		lexer.Def(equalTok, `"="`, `=`),
		lexer.Def(poundTok, `"#"`, `#`),
		lexer.Def(quoteTok, `'"'`, `"`),
		lexer.Def(dotTok, `"."`, `\.`),
		lexer.Def(atTok, `"@"`, `@`),
	}

	// whitespace and #! ... !# comments
	extrasRe = regexp.MustCompile(`\A(?:\s+|#!(?s:.*?)!#)`)
)

func typeName(tt int) string {
	return tokenDefs[tt].TypeName
}
