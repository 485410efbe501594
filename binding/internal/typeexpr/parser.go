// Package typeexpr parses the textual type expressions used in binding
// declarations into an AST. The grammar is small and parsed by recursive
// descent:
//
//	type   := ident
//	        | "ptr" "<" type ">"
//	        | "vec" "<" type ">"
//	        | "array" "<" type "," number ">"
//	        | "struct" "{" [ field { "," field } ] "}"
//	        | "extern" string
//	field  := ident ":" type
//
// Identifier resolution (primitive vs named extern type) happens in the
// binding package; this package only produces structure.
package typeexpr

import (
	"fmt"
	"strconv"
)

// NodeKind discriminates AST nodes.
type NodeKind uint8

const (
	NodeIdent NodeKind = iota
	NodePtr
	NodeVec
	NodeArray
	NodeStruct
	NodeExtern
)

// Node is one parsed type expression.
type Node struct {
	Kind   NodeKind
	Name   string  // NodeIdent: identifier; NodeExtern: extern type name
	Elem   *Node   // NodePtr, NodeVec, NodeArray
	Len    uint32  // NodeArray
	Fields []Field // NodeStruct
}

// Field is one named struct member.
type Field struct {
	Name string
	Type *Node
}

type Parser struct {
	tokens []Token
	pos    int
}

func New(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream as a single type expression.
func (p *Parser) Parse() (*Node, error) {
	n, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, fmt.Errorf("pos %d: trailing input %q", t.Pos, t.Value)
	}
	return n, nil
}

func (p *Parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ TokenType) (*Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, fmt.Errorf("pos %d: expected %v, got %q", t.Pos, typ, t.Value)
	}
	return t, nil
}

func (p *Parser) parseType() (*Node, error) {
	t, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	switch t.Value {
	case "ptr":
		elem, err := p.parseAngleElem()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodePtr, Elem: elem}, nil

	case "vec":
		elem, err := p.parseAngleElem()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeVec, Elem: elem}, nil

	case "array":
		if _, err := p.expect(TokenLAngle); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenComma); err != nil {
			return nil, err
		}
		nt, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(nt.Value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("pos %d: array length %q out of range", nt.Pos, nt.Value)
		}
		if _, err := p.expect(TokenRAngle); err != nil {
			return nil, err
		}
		return &Node{Kind: NodeArray, Elem: elem, Len: uint32(n)}, nil

	case "struct":
		return p.parseStruct()

	case "extern":
		nt, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeExtern, Name: nt.Value}, nil
	}

	return &Node{Kind: NodeIdent, Name: t.Value}, nil
}

func (p *Parser) parseAngleElem() (*Node, error) {
	if _, err := p.expect(TokenLAngle); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRAngle); err != nil {
		return nil, err
	}
	return elem, nil
}

func (p *Parser) parseStruct() (*Node, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	node := &Node{Kind: NodeStruct}
	for {
		t := p.peek()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input in struct body")
		}
		if t.Type == TokenRBrace {
			p.next()
			return node, nil
		}

		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		ft, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.Fields = append(node.Fields, Field{Name: name.Value, Type: ft})

		t = p.peek()
		if t != nil && t.Type == TokenComma {
			p.next()
		}
	}
}
