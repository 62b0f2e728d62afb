package appidentityassets

import _ "embed"

// YAML is the embedded app identity, giving standalone binaries a name,
// config path, and env prefix without any external `.fulmen/app.yaml`.
//
//go:embed app.yaml
var YAML []byte
