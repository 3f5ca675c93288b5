// Package machines is an example plugin library exporting trainable machines.
//
//	go build -buildmode=plugin -o machines.so ./plugins/machines/plugin
package machines
