package doc

// ElementKind is the closed set of declaration shapes the generator
// understands. Anything else is skipped by classification.
type ElementKind uint8

const (
	ElemClass ElementKind = iota
	ElemInterface
	ElemEnum
	ElemMethod
	ElemConstructor
	ElemField
	ElemEnumConstant
)

func (k ElementKind) String() string {
	switch k {
	case ElemClass:
		return "class"
	case ElemInterface:
		return "interface"
	case ElemEnum:
		return "enum"
	case ElemMethod:
		return "method"
	case ElemConstructor:
		return "constructor"
	case ElemField:
		return "field"
	case ElemEnumConstant:
		return "enum constant"
	}
	return "unknown"
}

// ClassLike reports whether the kind can own member declarations.
func (k ElementKind) ClassLike() bool {
	return k == ElemClass || k == ElemInterface || k == ElemEnum
}

// Param is one formal parameter of a method or constructor.
type Param struct {
	Name string
	Type string
}

// SignatureFacts is a read-only snapshot of a declaration's shape, computed
// fresh for every generation request. It is never cached: the underlying
// declaration may be edited between invocations.
type SignatureFacts struct {
	Kind       ElementKind
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType string
	HasReturn  bool
	Throws     []string
}
