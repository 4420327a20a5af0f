// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package contractor wraps a cinp.Client with the resources of the Contractor
// infrastructure management API (sites, foundations, structures, address blocks, jobs).
//
// Example:
//
//	client, _ := cinp.NewClient("http://contractor:8888")
//	c := contractor.New(client)
//	if _, err := c.Login(ctx, "admin", "secret"); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Logout(ctx)
//
//	foundations, err := c.Foundations(ctx, contractor.SiteURI("site1"))
package contractor

import (
	"context"
	"fmt"

	"github.com/netascode/go-cinp"
)

// APIRoot is the root namespace of the Contractor API
const APIRoot = "/api/v1/"

// Model uris
const (
	AuthUserURI            = APIRoot + "Auth/User"
	SiteURIBase            = APIRoot + "Site/Site"
	PlotURI                = APIRoot + "Survey/Plot"
	CartographerURI        = APIRoot + "Survey/Cartographer"
	NetworkURI             = APIRoot + "Utilities/Network"
	NetworkAddressBlockURI = APIRoot + "Utilities/NetworkAddressBlock"
	AddressBlockURI        = APIRoot + "Utilities/AddressBlock"
	AddressURI             = APIRoot + "Utilities/Address"
	ReservedAddressURI     = APIRoot + "Utilities/ReservedAddress"
	DynamicAddressURI      = APIRoot + "Utilities/DynamicAddress"
	FoundationURI          = APIRoot + "Building/Foundation"
	StructureURI           = APIRoot + "Building/Structure"
	ComplexURI             = APIRoot + "Building/Complex"
	DependencyURI          = APIRoot + "Building/Dependency"
	FoundationBluePrintURI = APIRoot + "BluePrint/FoundationBluePrint"
	StructureBluePrintURI  = APIRoot + "BluePrint/StructureBluePrint"
	PXEURI                 = APIRoot + "BluePrint/PXE"
	ScriptURI              = APIRoot + "BluePrint/Script"
	BaseJobURI             = APIRoot + "Foreman/BaseJob"
	FoundationJobURI       = APIRoot + "Foreman/FoundationJob"
	StructureJobURI        = APIRoot + "Foreman/StructureJob"
	DependencyJobURI       = APIRoot + "Foreman/DependencyJob"
	JobLogURI              = APIRoot + "Foreman/JobLog"
)

// Contractor is a typed facade over a cinp.Client
type Contractor struct {
	client *cinp.Client
}

// New returns a Contractor using client for all requests
func New(client *cinp.Client) *Contractor {
	return &Contractor{client: client}
}

// Client returns the underlying CInP client
func (c *Contractor) Client() *cinp.Client {
	return c.client
}

// Authenticated reports whether a session token is held
func (c *Contractor) Authenticated() bool {
	return c.client.HasCredentials()
}

// Login exchanges username and password for a session token and stores it on the client
//
// Returns the token.
func (c *Contractor) Login(ctx context.Context, username, password string) (string, error) {
	res, err := c.client.Call(ctx, AuthUserURI+"(login)", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	token, ok := res.Data.(string)
	if !ok || token == "" {
		return "", fmt.Errorf("login: server returned no session token")
	}

	c.client.SetAuth(username, token)
	return token, nil
}

// Logout ends the server session and clears the client credentials
//
// Credentials are cleared even if the server call fails.
func (c *Contractor) Logout(ctx context.Context) error {
	if !c.client.HasCredentials() {
		return nil
	}
	defer c.client.SetAuth("", "")

	if _, err := c.client.Call(ctx, AuthUserURI+"(logout)", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Whoami returns the user the server associates with the current session
func (c *Contractor) Whoami(ctx context.Context) (string, error) {
	res, err := c.client.Call(ctx, AuthUserURI+"(whoami)", nil)
	if err != nil {
		return "", fmt.Errorf("whoami: %w", err)
	}
	user, ok := res.Data.(string)
	if !ok {
		return "", fmt.Errorf("whoami: expected a user name, got %T", res.Data)
	}
	return user, nil
}

// ObjectURI returns the uri of a single object of model
func ObjectURI(model, id string) string {
	return cinp.MustSplitURI(model).WithIDs(id).String()
}

// SiteURI returns the uri of a site
func SiteURI(id string) string {
	return ObjectURI(SiteURIBase, id)
}

// Get fetches one object of model by id
func (c *Contractor) Get(ctx context.Context, model, id string) (map[string]any, error) {
	res, err := c.client.Get(ctx, ObjectURI(model, id))
	if err != nil {
		return nil, err
	}
	obj, ok := res.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get %s: expected an object, got %T", model, res.Data)
	}
	return obj, nil
}

// filtered runs GetFilteredObjects with a single filter parameter
func (c *Contractor) filtered(ctx context.Context, model, filter, value string) (map[string]any, error) {
	return c.client.GetFilteredObjects(ctx, model, filter, map[string]any{filter: value})
}

// all runs GetFilteredObjects without a filter
func (c *Contractor) all(ctx context.Context, model string) (map[string]any, error) {
	return c.client.GetFilteredObjects(ctx, model, "", nil)
}

// Sites returns all sites (first 100)
func (c *Contractor) Sites(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, SiteURIBase)
}

// Plots returns all plots
func (c *Contractor) Plots(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, PlotURI)
}

// Cartographers returns all cartographers
func (c *Contractor) Cartographers(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, CartographerURI)
}

// FoundationBluePrints returns all foundation blueprints
func (c *Contractor) FoundationBluePrints(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, FoundationBluePrintURI)
}

// StructureBluePrints returns all structure blueprints
func (c *Contractor) StructureBluePrints(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, StructureBluePrintURI)
}

// PXEs returns all PXE definitions
func (c *Contractor) PXEs(ctx context.Context) (map[string]any, error) {
	return c.all(ctx, PXEURI)
}

// Networks returns the networks of a site
func (c *Contractor) Networks(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, NetworkURI, "site", site)
}

// NetworkAddressBlocks returns the address blocks attached to a network
func (c *Contractor) NetworkAddressBlocks(ctx context.Context, network string) (map[string]any, error) {
	return c.filtered(ctx, NetworkAddressBlockURI, "network", network)
}

// Foundations returns the foundations of a site
func (c *Contractor) Foundations(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, FoundationURI, "site", site)
}

// Structures returns the structures of a site
func (c *Contractor) Structures(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, StructureURI, "site", site)
}

// Complexes returns the complexes of a site
func (c *Contractor) Complexes(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, ComplexURI, "site", site)
}

// Dependencies returns the dependencies of a site
func (c *Contractor) Dependencies(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, DependencyURI, "site", site)
}

// FoundationDependencies returns the dependencies of a foundation
func (c *Contractor) FoundationDependencies(ctx context.Context, foundation string) (map[string]any, error) {
	return c.filtered(ctx, DependencyURI, "foundation", foundation)
}

// AddressBlocks returns the address blocks of a site
func (c *Contractor) AddressBlocks(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, AddressBlockURI, "site", site)
}

// StructureAddresses returns the addresses assigned to a structure
func (c *Contractor) StructureAddresses(ctx context.Context, structure string) (map[string]any, error) {
	return c.filtered(ctx, AddressURI, "structure", structure)
}

// AddressBlockAddresses returns every address of an address block: assigned,
// reserved and dynamic, merged into one map
func (c *Contractor) AddressBlockAddresses(ctx context.Context, addressBlock string) (map[string]any, error) {
	result := map[string]any{}
	for _, model := range []string{AddressURI, ReservedAddressURI, DynamicAddressURI} {
		objects, err := c.filtered(ctx, model, "address_block", addressBlock)
		if err != nil {
			return nil, err
		}
		for uri, obj := range objects {
			result[uri] = obj
		}
	}
	return result, nil
}

// FoundationJobs returns the foundation jobs of a site
func (c *Contractor) FoundationJobs(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, FoundationJobURI, "site", site)
}

// StructureJobs returns the structure jobs of a site
func (c *Contractor) StructureJobs(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, StructureJobURI, "site", site)
}

// DependencyJobs returns the dependency jobs of a site
func (c *Contractor) DependencyJobs(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, DependencyJobURI, "site", site)
}

// JobLogs returns the job log of a site
func (c *Contractor) JobLogs(ctx context.Context, site string) (map[string]any, error) {
	return c.filtered(ctx, JobLogURI, "site", site)
}

// Todo returns the foundations of a site that still need work
func (c *Contractor) Todo(ctx context.Context, site string, hasDependencies bool, foundationClass string) (map[string]any, error) {
	return c.client.GetFilteredObjects(ctx, FoundationURI, "todo", map[string]any{
		"site":             site,
		"has_dependancies": hasDependencies,
		"foundation_class": foundationClass,
	})
}

// FoundationTypes returns the foundation classes known to the server
func (c *Contractor) FoundationTypes(ctx context.Context) ([]string, error) {
	res, err := c.client.Call(ctx, FoundationURI+"(getFoundationTypes)", nil)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, item := range res.GetValue("@this").Array() {
		result = append(result, item.String())
	}
	return result, nil
}

// Config returns the rendered configuration of a foundation, structure or site uri
func (c *Contractor) Config(ctx context.Context, uri string) (map[string]any, error) {
	res, err := c.client.Call(ctx, uri+"(getConfig)", nil)
	if err != nil {
		return nil, err
	}
	config, ok := res.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config: expected an object, got %T", res.Data)
	}
	return config, nil
}

// FoundationInterfaces returns the network interfaces of a foundation
func (c *Contractor) FoundationInterfaces(ctx context.Context, foundation string) (any, error) {
	res, err := c.client.Call(ctx, foundation+"(getInterfaceList)", nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// SiteDependencyMap returns the dependency graph of a site
func (c *Contractor) SiteDependencyMap(ctx context.Context, site string) (any, error) {
	res, err := c.client.Call(ctx, site+"(getDependencyMap)", nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// JobStats returns job counters for a site
func (c *Contractor) JobStats(ctx context.Context, site string) (map[string]any, error) {
	res, err := c.client.Call(ctx, BaseJobURI+"(jobStats)", map[string]any{"site": site})
	if err != nil {
		return nil, err
	}
	stats, ok := res.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("job stats: expected an object, got %T", res.Data)
	}
	return stats, nil
}
