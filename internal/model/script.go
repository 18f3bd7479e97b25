package model

// KeyType names the value types a scripted key may declare.
type KeyType string

const (
	// KeyString declares a string-valued key.
	KeyString KeyType = "string"
	// KeyInt declares an int-valued key.
	KeyInt KeyType = "int"
	// KeyBool declares a bool-valued key.
	KeyBool KeyType = "bool"
	// KeyFloat declares a float64-valued key.
	KeyFloat KeyType = "float"
)

// KeyDecl declares one key used by a scripted scenario. Keys are
// inheritable unless the script says otherwise.
type KeyDecl struct {
	Name        string  `yaml:"name"`
	Type        KeyType `yaml:"type"`
	Inheritable *bool   `yaml:"inheritable,omitempty"`
}

// ScopeNode is one nested scope in a scripted scenario. Its bindings
// hold for the node's extent only: reads run after binding, then the
// children, then the node is left and the outer values apply again.
type ScopeNode struct {
	Label    string            `yaml:"label,omitempty"`
	Bind     map[string]string `yaml:"bind,omitempty"`
	Read     []string          `yaml:"read,omitempty"`
	Spawn    bool              `yaml:"spawn,omitempty"`
	Children []ScopeNode       `yaml:"children,omitempty"`
}

// Script is a data-driven scenario: keys to declare and a scope tree
// to walk.
type Script struct {
	Name  string    `yaml:"name"`
	Keys  []KeyDecl `yaml:"keys"`
	Scope ScopeNode `yaml:"scope"`
}
