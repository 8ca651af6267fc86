package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultSandboxName is the name used when creating a sandbox without name.
	DefaultSandboxName = "sandbox"
	// DefaultSandboxMaxLifeSeconds is the lifetime used when creating a sandbox without one.
	DefaultSandboxMaxLifeSeconds = 3600
	// MaxSandboxLifeSeconds is the maximum lifetime a sandbox can have.
	MaxSandboxLifeSeconds = 86400
)

// SandboxOS is the operating system of a sandbox shape.
type SandboxOS string

const (
	SandboxOSWindows SandboxOS = "Windows"
	SandboxOSLinux   SandboxOS = "Linux"
	SandboxOSAndroid SandboxOS = "Android"
)

// IsAndroid returns true for Android sandboxes, the check is case insensitive.
func (o SandboxOS) IsAndroid() bool { return strings.EqualFold(string(o), string(SandboxOSAndroid)) }

// SandboxShape is the hardware and OS template a sandbox was created from.
type SandboxShape struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	OS           SandboxOS `json:"os"`
	Architecture string    `json:"architecture,omitempty"`
}

// Sandbox is a remote Lybic sandbox.
type Sandbox struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	ExpiredAt string        `json:"expiredAt"`
	CreatedAt string        `json:"createdAt"`
	ProjectID string        `json:"projectId"`
	Shape     *SandboxShape `json:"shape,omitempty"`
}

// GatewayType is the transport protocol of a sandbox gateway.
type GatewayType string

const (
	GatewayTypeKCP          GatewayType = "KCP"
	GatewayTypeQUIC         GatewayType = "QUIC"
	GatewayTypeWebTransport GatewayType = "WEB_TRANSPORT"
)

var gatewayTypeCodes = map[int]GatewayType{
	4: GatewayTypeKCP,
	5: GatewayTypeQUIC,
	6: GatewayTypeWebTransport,
}

// UnmarshalJSON accepts both the gateway type name and its numeric code.
func (g *GatewayType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*g = GatewayType(name)
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("gateway type must be a string or a number: %w", ErrNotValid)
	}
	t, ok := gatewayTypeCodes[code]
	if !ok {
		t = GatewayType(fmt.Sprintf("%d", code))
	}
	*g = t
	return nil
}

// GatewayProvider is the network provider preferred by a gateway.
type GatewayProvider string

var gatewayProviderCodes = map[int]GatewayProvider{
	1: "CHINA_MOBILE",
	2: "CHINA_UNICOM",
	3: "CHINA_TELECOM",
	4: "GLOBAL_BGP",
}

// UnmarshalJSON accepts both the provider name and its numeric code.
func (p *GatewayProvider) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = GatewayProvider(name)
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("gateway provider must be a string or a number: %w", ErrNotValid)
	}
	prov, ok := gatewayProviderCodes[code]
	if !ok {
		prov = GatewayProvider(fmt.Sprintf("%d", code))
	}
	*p = prov
	return nil
}

// GatewayAddress is an address end users can use to stream a sandbox.
type GatewayAddress struct {
	Address            string            `json:"address"`
	Port               int               `json:"port"`
	Name               string            `json:"name"`
	PreferredProviders []GatewayProvider `json:"preferredProviders"`
	GatewayType        GatewayType       `json:"gatewayType"`
}

// ConnectDetails has the information to connect to a sandbox stream.
type ConnectDetails struct {
	GatewayAddresses      []GatewayAddress `json:"gatewayAddresses"`
	CertificateHashBase64 string           `json:"certificateHashBase64"`
	EndUserToken          string           `json:"endUserToken"`
	RoomID                string           `json:"roomId"`
}

// SandboxDetails is a sandbox with its connection details.
type SandboxDetails struct {
	Sandbox        Sandbox        `json:"sandbox"`
	ConnectDetails ConnectDetails `json:"connectDetails"`
}

// CreateSandboxRequest is the request to create a sandbox.
type CreateSandboxRequest struct {
	Name           string `json:"name"`
	MaxLifeSeconds int    `json:"maxLifeSeconds"`
	ProjectID      string `json:"projectId,omitempty"`
	// Shape is the sandbox shape name.
	Shape        string `json:"shape,omitempty"`
	DatacenterID string `json:"datacenterId,omitempty"`
}

// Defaults sets the default values on the unset fields.
func (r *CreateSandboxRequest) Defaults() {
	if r.Name == "" {
		r.Name = DefaultSandboxName
	}
	if r.MaxLifeSeconds == 0 {
		r.MaxLifeSeconds = DefaultSandboxMaxLifeSeconds
	}
}

// Validate checks the request is valid.
func (r CreateSandboxRequest) Validate() error {
	if r.MaxLifeSeconds < 1 || r.MaxLifeSeconds > MaxSandboxLifeSeconds {
		return fmt.Errorf("max life seconds must be between 1 and %d, got %d: %w", MaxSandboxLifeSeconds, r.MaxLifeSeconds, ErrNotValid)
	}
	return nil
}

// ExtendSandboxRequest is the request to extend the life of a sandbox.
type ExtendSandboxRequest struct {
	// MaxLifeSeconds is the new lifetime of the sandbox counted from its creation.
	MaxLifeSeconds int `json:"maxLifeSeconds"`
}

// Validate checks the request is valid.
func (r ExtendSandboxRequest) Validate() error {
	if r.MaxLifeSeconds < 1 || r.MaxLifeSeconds > MaxSandboxLifeSeconds {
		return fmt.Errorf("max life seconds must be between 1 and %d, got %d: %w", MaxSandboxLifeSeconds, r.MaxLifeSeconds, ErrNotValid)
	}
	return nil
}
