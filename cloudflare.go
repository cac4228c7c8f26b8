package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/samber/lo"
)

// CloudflareClient talks to the Workers custom-domains API. It holds no
// state beyond configuration; every call hits the provider directly.
type CloudflareClient struct {
	client      *http.Client
	baseURL     string
	accountID   string
	zoneID      string
	apiToken    string
	apiKey      string
	apiEmail    string
	serviceName string
}

func NewCloudflareClient(cfg Config) *CloudflareClient {
	return &CloudflareClient{
		client:      &http.Client{},
		baseURL:     cfg.APIBaseURL,
		accountID:   cfg.AccountID,
		zoneID:      cfg.ZoneID,
		apiToken:    cfg.APIToken,
		apiKey:      cfg.APIKey,
		apiEmail:    cfg.APIEmail,
		serviceName: cfg.ServiceName,
	}
}

type workersDomain struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	Service  string `json:"service"`
}

type domainListResponse struct {
	Result []workersDomain `json:"result"`
}

func (c *CloudflareClient) domainsURL() string {
	return c.baseURL + "/accounts/" + c.accountID + "/workers/domains"
}

func (c *CloudflareClient) setAuth(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
		return
	}
	req.Header.Set("X-Auth-Email", c.apiEmail)
	req.Header.Set("X-Auth-Key", c.apiKey)
}

// fetchDomains returns all domain records plus the HTTP status of the
// list request. Transport and decode failures count as a 500.
func (c *CloudflareClient) fetchDomains() ([]workersDomain, int) {
	req, err := http.NewRequest(http.MethodGet, c.domainsURL(), nil)
	if err != nil {
		log.Println("[e] error when building domain list request: " + err.Error())
		return nil, http.StatusInternalServerError
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Println("[e] error when fetching domain list: " + err.Error())
		return nil, http.StatusInternalServerError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("[e] error when fetching domain list: HTTP status code " + strconv.Itoa(resp.StatusCode))
		return nil, resp.StatusCode
	}

	var list domainListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		log.Println("[e] error when parsing domain list: " + err.Error())
		return nil, http.StatusInternalServerError
	}
	return list.Result, resp.StatusCode
}

// List returns the hostnames registered for this service. Any failure
// degrades to an empty list; callers must treat empty as "possibly
// incomplete", not "definitely none".
func (c *CloudflareClient) List() []string {
	records, status := c.fetchDomains()
	if status != http.StatusOK {
		return nil
	}
	return lo.FilterMap(records, func(d workersDomain, _ int) (string, bool) {
		return d.Hostname, d.Service == c.serviceName
	})
}

// Register issues a create-or-update for the hostname and returns the
// provider's status code unmodified. Transport failures map to 500.
func (c *CloudflareClient) Register(hostname string) int {
	body, err := json.Marshal(map[string]string{
		"environment": "production",
		"hostname":    hostname,
		"service":     c.serviceName,
		"zone_id":     c.zoneID,
	})
	if err != nil {
		log.Println("[e] error when encoding register request: " + err.Error())
		return http.StatusInternalServerError
	}

	req, err := http.NewRequest(http.MethodPut, c.domainsURL(), bytes.NewReader(body))
	if err != nil {
		log.Println("[e] error when building register request: " + err.Error())
		return http.StatusInternalServerError
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Println("[e] error when registering domain " + hostname + ": " + err.Error())
		return http.StatusInternalServerError
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

// Deregister looks the hostname up in the live list and deletes the
// matching record by id. A missing record yields 404 without a delete
// call; a failed list fetch yields that fetch's status directly.
func (c *CloudflareClient) Deregister(hostname string) int {
	records, status := c.fetchDomains()
	if status != http.StatusOK {
		return status
	}

	record, found := lo.Find(records, func(d workersDomain) bool {
		return d.Hostname == hostname
	})
	if !found {
		return http.StatusNotFound
	}

	req, err := http.NewRequest(http.MethodDelete, c.domainsURL()+"/"+record.ID, nil)
	if err != nil {
		log.Println("[e] error when building deregister request: " + err.Error())
		return http.StatusInternalServerError
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Println("[e] error when deregistering domain " + hostname + ": " + err.Error())
		return http.StatusInternalServerError
	}
	defer resp.Body.Close()
	return resp.StatusCode
}
