// Command netconnect is the host-side bridge to a netconnectd
// network-configuration daemon: it queries Wi-Fi status, lists and joins
// networks, drives the access-point fallback mode, manages the regulatory
// country, and can watch daemon state in the background.
package main
