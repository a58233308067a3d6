package storagesdk

// Client is a storage client bound to a validated Config. The account SDK
// only needs to hold it and hand its config back out; the storage operations
// themselves live in the platform's storage SDK.
type Client struct {
	config Config
}

// NewClient validates cfg and wraps it.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{config: cfg}, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config { return c.config }

// ClientID returns the storage client identifier.
func (c *Client) ClientID() string { return c.config.ClientID }
