package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/cloudtools/pkg/logging"
)

// Client executes azure commands: it drives the runner, prints a report
// through the formatter, and returns the decoded value for callers using
// the package as a library. Failures are printed, not returned as
// process-fatal errors; the returned error lets library callers branch.
type Client struct {
	runner *Runner
	format *Formatter
	log    *logging.Logger
}

// Resource creation defaults, matching the az CLI conventions this tool
// grew up with.
const (
	DefaultLocation      = "eastus"
	DefaultCognitiveKind = "CognitiveServices"
	DefaultCognitiveSKU  = "S0"
	DefaultStorageSKU    = "Standard_LRS"
	DefaultModelName     = "gpt-4"
	DefaultModelVersion  = "turbo-2024-04-09"
)

// NewClient creates a client over the given runner and formatter. A nil
// logger disables logging.
func NewClient(runner *Runner, formatter *Formatter, log *logging.Logger) *Client {
	return &Client{runner: runner, format: formatter, log: log}
}

func (c *Client) logf(format string, v ...interface{}) {
	if c.log != nil {
		c.log.Infof(format, v...)
	}
}

func (c *Client) run(ctx context.Context, args []string, structured bool) Result {
	c.logf("az %s", strings.Join(args, " "))
	res := c.runner.Run(ctx, args, structured)
	if !res.OK() {
		c.logf("az %s failed: %s", args[0], res.Err)
	}
	return res
}

// failure prints and returns a uniform error for a failed result.
func (c *Client) failure(res Result) error {
	c.format.Failure(res)
	return fmt.Errorf("az command failed: %s", res.Err)
}

// Login runs az login, which opens a browser for authentication, then
// lists the subscriptions now visible.
func (c *Client) Login(ctx context.Context) ([]Subscription, error) {
	c.format.Printf("Opening browser for Azure login...\n")
	res := c.run(ctx, []string{"login"}, false)
	if !res.OK() {
		c.format.Failuref("Login failed: %s", res.Err)
		return nil, fmt.Errorf("login failed: %s", res.Err)
	}
	c.format.Successf("Login successful!")
	return c.ListSubscriptions(ctx)
}

// AccountInfo shows the current subscription, tenant, and user.
func (c *Client) AccountInfo(ctx context.Context) (*Account, error) {
	res := c.run(ctx, []string{"account", "show"}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var acc Account
	if err := res.Decode(&acc); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.Account(acc)
	return &acc, nil
}

// ListSubscriptions lists all subscriptions visible to the session.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	res := c.run(ctx, []string{"account", "list"}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var subs []Subscription
	if err := res.Decode(&subs); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.Subscriptions(subs)
	return subs, nil
}

// SetSubscription switches the active subscription.
func (c *Client) SetSubscription(ctx context.Context, subscriptionID string) error {
	res := c.run(ctx, []string{"account", "set", "--subscription", subscriptionID}, true)
	if !res.OK() {
		return c.failure(res)
	}
	c.format.Successf("Active subscription set to: %s", subscriptionID)
	return nil
}

// ListGroups lists all resource groups.
func (c *Client) ListGroups(ctx context.Context) ([]ResourceGroup, error) {
	res := c.run(ctx, []string{"group", "list"}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var groups []ResourceGroup
	if err := res.Decode(&groups); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.Groups(groups)
	return groups, nil
}

// ListResources lists resources, optionally scoped to one resource group.
func (c *Client) ListResources(ctx context.Context, group string) ([]Resource, error) {
	args := []string{"resource", "list"}
	if group != "" {
		args = append(args, "--resource-group", group)
	}
	res := c.run(ctx, args, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var resources []Resource
	if err := res.Decode(&resources); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.Resources(resources, group)
	return resources, nil
}

// GetKeys fetches API keys for a resource by type. Supported types are
// cognitive, openai, and storage; an unknown type is a usage problem
// reported on stdout, not an invocation.
func (c *Client) GetKeys(ctx context.Context, resourceType, name, group string) error {
	switch strings.ToLower(resourceType) {
	case "cognitive", "openai":
		_, err := c.GetCognitiveKeys(ctx, name, group)
		return err
	case "storage":
		_, err := c.GetStorageKeys(ctx, name, group)
		return err
	default:
		c.format.Failuref("Unknown resource type: %s", resourceType)
		c.format.Printf("  Supported types: cognitive, openai, storage\n")
		return nil
	}
}

// GetCognitiveKeys fetches the key pair of a Cognitive Services account.
// Azure OpenAI resources use the same endpoint.
func (c *Client) GetCognitiveKeys(ctx context.Context, name, group string) (*CognitiveKeys, error) {
	res := c.run(ctx, []string{
		"cognitiveservices", "account", "keys", "list",
		"--name", name,
		"--resource-group", group,
	}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var keys CognitiveKeys
	if err := res.Decode(&keys); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.CognitiveKeys(name, keys)
	return &keys, nil
}

// GetStorageKeys fetches the access keys of a storage account.
func (c *Client) GetStorageKeys(ctx context.Context, name, group string) ([]StorageKey, error) {
	res := c.run(ctx, []string{
		"storage", "account", "keys", "list",
		"--account-name", name,
		"--resource-group", group,
	}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var keys []StorageKey
	if err := res.Decode(&keys); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.StorageKeys(name, keys)
	return keys, nil
}

// CreateResourceGroup creates a resource group. Location defaults to
// eastus when empty.
func (c *Client) CreateResourceGroup(ctx context.Context, name, location string) error {
	if location == "" {
		location = DefaultLocation
	}
	res := c.run(ctx, []string{
		"group", "create",
		"--name", name,
		"--location", location,
	}, true)
	if !res.OK() {
		return c.failure(res)
	}
	c.format.Successf("Resource group %q created in %s", name, location)
	return nil
}

// CreateCognitive creates a Cognitive Services account and, on success,
// fetches and prints its keys. Kind defaults to CognitiveServices; other
// kinds include OpenAI, ComputerVision, and SpeechServices.
func (c *Client) CreateCognitive(ctx context.Context, name, group, kind string) error {
	if kind == "" {
		kind = DefaultCognitiveKind
	}
	res := c.run(ctx, []string{
		"cognitiveservices", "account", "create",
		"--name", name,
		"--resource-group", group,
		"--kind", kind,
		"--sku", DefaultCognitiveSKU,
		"--location", DefaultLocation,
		"--yes",
	}, true)
	if !res.OK() {
		return c.failure(res)
	}
	c.format.Successf("Cognitive Service %q (%s) created", name, kind)
	_, err := c.GetCognitiveKeys(ctx, name, group)
	return err
}

// CreateStorage creates a storage account and prints its access keys.
func (c *Client) CreateStorage(ctx context.Context, name, group string) error {
	res := c.run(ctx, []string{
		"storage", "account", "create",
		"--name", name,
		"--resource-group", group,
		"--sku", DefaultStorageSKU,
		"--location", DefaultLocation,
	}, true)
	if !res.OK() {
		return c.failure(res)
	}
	c.format.Successf("Storage account %q created", name)
	_, err := c.GetStorageKeys(ctx, name, group)
	return err
}

// CreateOpenAI creates an Azure OpenAI resource.
func (c *Client) CreateOpenAI(ctx context.Context, name, group string) error {
	return c.CreateCognitive(ctx, name, group, "OpenAI")
}

// ListDeployments lists model deployments of an OpenAI resource.
func (c *Client) ListDeployments(ctx context.Context, name, group string) ([]Deployment, error) {
	res := c.run(ctx, []string{
		"cognitiveservices", "account", "deployment", "list",
		"--name", name,
		"--resource-group", group,
	}, true)
	if !res.OK() {
		return nil, c.failure(res)
	}
	var deps []Deployment
	if err := res.Decode(&deps); err != nil {
		c.format.Raw(res)
		return nil, err
	}
	c.format.Deployments(name, deps)
	return deps, nil
}

// CreateDeployment deploys a model to an OpenAI resource. Model and
// version fall back to the gpt-4 defaults when empty.
func (c *Client) CreateDeployment(ctx context.Context, name, group, deployment, model, version string) error {
	if model == "" {
		model = DefaultModelName
	}
	if version == "" {
		version = DefaultModelVersion
	}
	res := c.run(ctx, []string{
		"cognitiveservices", "account", "deployment", "create",
		"--name", name,
		"--resource-group", group,
		"--deployment-name", deployment,
		"--model-name", model,
		"--model-version", version,
		"--model-format", "OpenAI",
	}, true)
	if !res.OK() {
		return c.failure(res)
	}
	c.format.Successf("Deployment %q (%s) created", deployment, model)
	return nil
}
