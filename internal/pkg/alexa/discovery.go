package alexa

type DiscoveryEndpoint struct {
	EndpointID        string        `json:"endpointId"`
	ManufacturerName  string        `json:"manufacturerName"`
	FriendlyName      string        `json:"friendlyName"`
	Description       string        `json:"description"`
	DisplayCategories []string      `json:"displayCategories"`
	Capabilities      []*Capability `json:"capabilities"`
}

type SupportedProperty struct {
	Name string `json:"name"`
}

type CapabilityProperties struct {
	Supported           []*SupportedProperty `json:"supported"`
	ProactivelyReported bool                 `json:"proactivelyReported"`
	Retrievable         bool                 `json:"retrievable"`
}

type ThermostatConfiguration struct {
	SupportedModes     []ThermostatMode `json:"supportedModes"`
	SupportsScheduling bool             `json:"supportsScheduling"`
}

type Capability struct {
	Type          string                   `json:"type"`
	Interface     string                   `json:"interface"`
	Version       string                   `json:"version"`
	Properties    *CapabilityProperties    `json:"properties,omitempty"`
	Configuration *ThermostatConfiguration `json:"configuration,omitempty"`
}

// NewCapability returns an interface capability reporting the named
// properties.  No names means the interface has no properties.
func NewCapability(iface string, propertyNames ...string) *Capability {
	c := &Capability{
		Type:      CapabilityTypeAlexaInterface,
		Interface: iface,
		Version:   PayloadVersion,
	}

	if len(propertyNames) > 0 {
		c.Properties = &CapabilityProperties{
			ProactivelyReported: true,
			Retrievable:         true,
		}
		for _, n := range propertyNames {
			c.Properties.Supported = append(c.Properties.Supported, &SupportedProperty{Name: n})
		}
	}

	return c
}

// Interfaces returns the interface names of the endpoint's capabilities
func (e *DiscoveryEndpoint) Interfaces() []string {
	names := make([]string, 0, len(e.Capabilities))
	for _, c := range e.Capabilities {
		names = append(names, c.Interface)
	}

	return names
}
