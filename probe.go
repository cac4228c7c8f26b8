package main

import (
	"log"
	"net/http"
	"strings"
)

// statusHostInactive is the edge signal the provider emits for a host
// it cannot resolve.
const statusHostInactive = 530

type ProbeResult int

const (
	ProbeReachable ProbeResult = iota
	ProbeInactive
	ProbeFailed
)

type Prober struct {
	client *http.Client
}

func NewProber() *Prober {
	return &Prober{client: &http.Client{}}
}

// Probe strips the root-domain suffix off the candidate hostname and
// issues one best-effort HTTPS request to the bare host. It only
// detects the provider's inactive signal; any other response means the
// host is not flagged inactive, nothing more.
func (p *Prober) Probe(hostname string) ProbeResult {
	host := strings.TrimSuffix(hostname, "."+rootDomain)

	resp, err := p.client.Get("https://" + host)
	if err != nil {
		log.Println("[w] probe of " + host + " failed: " + err.Error())
		return ProbeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode == statusHostInactive {
		return ProbeInactive
	}
	return ProbeReachable
}
