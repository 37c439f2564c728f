package products

// Domain groups data products. Its Name is the identity key across
// repositories; ID is assigned by the remote catalog and never compared.
type Domain struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"desc,omitempty" yaml:"desc,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Key returns the identity key of the domain.
func (d Domain) Key() string {
	return d.Name
}

// Normalize returns a copy with empty optional fields collapsed to absent.
// Domain fields are plain strings, so the zero value already is absent.
func (d Domain) Normalize() Domain {
	return d
}

// UnmarshalYAML accepts both the repository keys (desc, path) and the
// remote catalog keys (description, schemaLocation).
func (d *Domain) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		ID             string `yaml:"id"`
		Name           string `yaml:"name"`
		Desc           string `yaml:"desc"`
		Description    string `yaml:"description"`
		Path           string `yaml:"path"`
		SchemaLocation string `yaml:"schemaLocation"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*d = Domain{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: firstNonEmpty(raw.Desc, raw.Description),
		Path:        firstNonEmpty(raw.Path, raw.SchemaLocation),
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
