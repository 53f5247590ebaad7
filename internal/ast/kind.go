package ast

// NodeKind classifies tree nodes. Declaration kinds carry a DeclInfo;
// DocComment, Whitespace and Text are leaves.
type NodeKind uint8

const (
	KindFile NodeKind = iota
	KindClass
	KindInterface
	KindEnum
	KindMethod
	KindConstructor
	KindField
	KindEnumConstant
	// KindDocComment is a /** ... */ leaf owned by the declaration it
	// documents (its first child when present).
	KindDocComment
	KindWhitespace
	// KindText is an opaque source fragment the generator never inspects.
	KindText
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindField:
		return "field"
	case KindEnumConstant:
		return "enum-constant"
	case KindDocComment:
		return "doc-comment"
	case KindWhitespace:
		return "whitespace"
	case KindText:
		return "text"
	}
	return "unknown"
}

// ClassLike reports whether the node kind can own member declarations.
func (k NodeKind) ClassLike() bool {
	return k == KindClass || k == KindInterface || k == KindEnum
}

// Declaration reports whether the kind is a documentable declaration.
func (k NodeKind) Declaration() bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindMethod, KindConstructor,
		KindField, KindEnumConstant:
		return true
	}
	return false
}
