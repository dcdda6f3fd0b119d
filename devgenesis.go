// Package devgenesis holds build-wide constants for the DevGenesis project generator.
package devgenesis

// Name is the product name used in generated artifacts.
const Name = "DevGenesis"

// Version is the current DevGenesis version.
const Version = "1.0.0"

// Generator identifies this build in generated manifests.
func Generator() string {
	return Name + " v" + Version
}
