// Package discovery announces the emulator's TCP listener over mDNS.
//
// When the emulator runs in listen mode it can register itself as a
// "_smartaudio._tcp" service in the local domain, letting test harnesses on
// the same network locate the endpoint without hard-coded addresses. The
// registration is withdrawn when the listener shuts down.
package discovery
