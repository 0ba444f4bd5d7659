package config

import "errors"

// ErrConfiguration is wrapped by every error Load returns.
var ErrConfiguration = errors.New("configuration error")
