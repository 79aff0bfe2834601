package azure

// Subscription is one entry from `az account list`.
type Subscription struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	IsDefault bool   `json:"isDefault"`
	TenantID  string `json:"tenantId"`
}

// Account is the output of `az account show`.
type Account struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	TenantID string      `json:"tenantId"`
	User     AccountUser `json:"user"`
}

// AccountUser identifies the signed-in principal.
type AccountUser struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ResourceGroup is one entry from `az group list`.
type ResourceGroup struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Resource is one entry from `az resource list`.
type Resource struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// CognitiveKeys holds the key pair of a Cognitive Services account,
// including Azure OpenAI resources.
type CognitiveKeys struct {
	Key1 string `json:"key1"`
	Key2 string `json:"key2"`
}

// StorageKey is one access key of a storage account.
type StorageKey struct {
	KeyName string `json:"keyName"`
	Value   string `json:"value"`
}

// Deployment is one entry from
// `az cognitiveservices account deployment list`.
type Deployment struct {
	Name       string               `json:"name"`
	Properties DeploymentProperties `json:"properties"`
}

// DeploymentProperties carries the deployed model description.
type DeploymentProperties struct {
	Model DeploymentModel `json:"model"`
}

// DeploymentModel names a deployed model and its version.
type DeploymentModel struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
