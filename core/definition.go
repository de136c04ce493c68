package core

// PropertyType enumerates the host form field kinds nodes declare.
type PropertyType string

const (
	PropertyTypeString     PropertyType = "string"
	PropertyTypeNumber     PropertyType = "number"
	PropertyTypeBoolean    PropertyType = "boolean"
	PropertyTypeOptions    PropertyType = "options"
	PropertyTypeCollection PropertyType = "collection"
)

// PropertyOption is one selectable value of an options property.
type PropertyOption struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Property describes a single node parameter for the host to render.
type Property struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Type        PropertyType `json:"type"`
	Default     any          `json:"default,omitempty"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required,omitempty"`
	// Options holds the selectable values of options properties.
	Options []PropertyOption `json:"options,omitempty"`
	// SubProperties holds the fields of collection properties.
	SubProperties []Property `json:"subProperties,omitempty"`
	// ShowWhen restricts the property to invocations where the named
	// parameter holds one of the listed values.
	ShowWhen map[string][]string `json:"showWhen,omitempty"`
}

// CredentialField describes one field of a credential type.
type CredentialField struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Type        PropertyType `json:"type"`
	Default     any          `json:"default,omitempty"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required,omitempty"`
	// Secret marks values the host stores encrypted and masks in forms.
	Secret bool `json:"secret,omitempty"`
}

// CredentialsDefinition declares a credential type a node consumes. The
// host matches it to stored credentials by name.
type CredentialsDefinition struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"displayName"`
	Fields      []CredentialField `json:"fields"`
}

// NodeDefinition is the host facing description of a node: identity,
// credential requirements and the parameter schema.
type NodeDefinition struct {
	Name        string                  `json:"name"`
	DisplayName string                  `json:"displayName"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Version     int                     `json:"version"`
	Inputs      []string                `json:"inputs"`
	Outputs     []string                `json:"outputs"`
	Credentials []CredentialsDefinition `json:"credentials,omitempty"`
	Properties  []Property              `json:"properties"`
}
