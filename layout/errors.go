package layout

// ConfigError is a load-time validation failure. Loading the layout fails and
// any previously active layout stays in effect; render-time code never sees
// the invalid structure.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "layout config: " + e.Reason }
