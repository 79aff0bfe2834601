package azure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAZ is a scripted stand-in for the az CLI. It answers the command
// families the client issues with canned JSON.
const fakeAZ = `#!/bin/sh
case "$1 $2" in
"account list")
  echo '[{"id":"sub-1","name":"Dev","state":"Enabled","isDefault":true,"tenantId":"t-1"}]'
  ;;
"account show")
  echo '{"id":"sub-1","name":"Dev","tenantId":"t-1","user":{"name":"dev@example.com","type":"user"}}'
  ;;
"account set")
  echo '{}'
  ;;
"group list")
  echo '[{"name":"prod-rg","location":"eastus"},{"name":"dev-rg","location":"westus"}]'
  ;;
"group create")
  echo '{"name":"new-rg","location":"eastus"}'
  ;;
"resource list")
  if [ "$3" = "--resource-group" ]; then
    echo '[{"name":"vm1","type":"Microsoft.Compute/virtualMachines","location":"eastus"}]'
  else
    echo '[{"name":"vm1","type":"Microsoft.Compute/virtualMachines","location":"eastus"},{"name":"sa1","type":"Microsoft.Storage/storageAccounts","location":"westus"}]'
  fi
  ;;
"cognitiveservices account")
  case "$3" in
  keys)
    echo '{"key1":"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa","key2":"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}'
    ;;
  create)
    echo '{"name":"my-ai"}'
    ;;
  deployment)
    if [ "$4" = "list" ]; then
      echo '[{"name":"chat","properties":{"model":{"name":"gpt-4","version":"turbo-2024-04-09"}}}]'
    else
      echo '{"name":"chat"}'
    fi
    ;;
  esac
  ;;
"storage account")
  case "$3" in
  keys)
    echo '[{"keyName":"key1","value":"cccccccccccccccccccccccccccccccc"},{"keyName":"key2","value":"dddddddddddddddddddddddddddddddd"}]'
    ;;
  create)
    echo '{"name":"mystorage"}'
    ;;
  esac
  ;;
*)
  echo "unrecognized command: $@" >&2
  exit 2
  ;;
esac
`

func newTestClient(t *testing.T, script string) (*Client, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "az")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))

	var out bytes.Buffer
	runner := &Runner{Binary: path, Timeout: 5 * time.Second}
	return NewClient(runner, NewFormatter(&out), nil), &out
}

func TestClient_ListSubscriptions(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	subs, err := client.ListSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Dev", subs[0].Name)
	assert.True(t, subs[0].IsDefault)
	assert.Contains(t, out.String(), "Dev (DEFAULT)")
}

func TestClient_AccountInfo(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	acc, err := client.AccountInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub-1", acc.ID)
	assert.Contains(t, out.String(), "User: dev@example.com")
}

func TestClient_ListGroups(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	groups, err := client.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Contains(t, out.String(), "prod-rg (eastus)")
}

func TestClient_ListResources_Scoped(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	resources, err := client.ListResources(context.Background(), "prod-rg")
	require.NoError(t, err)
	assert.Len(t, resources, 1, "scoped listing must pass --resource-group through")
	assert.Contains(t, out.String(), "Resources in prod-rg")
}

func TestClient_ListResources_All(t *testing.T) {
	client, _ := newTestClient(t, fakeAZ)

	resources, err := client.ListResources(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, resources, 2)
}

func TestClient_GetKeys_Cognitive(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	err := client.GetKeys(context.Background(), "cognitive", "my-ai", "prod-rg")
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "API Keys for my-ai")
	assert.NotContains(t, s, strings.Repeat("a", 32), "keys must be redacted")
}

func TestClient_GetKeys_OpenAIAliasesCognitive(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.GetKeys(context.Background(), "openai", "my-ai", "prod-rg"))
	assert.Contains(t, out.String(), "API Keys for my-ai")
}

func TestClient_GetKeys_Storage(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.GetKeys(context.Background(), "storage", "mystorage", "prod-rg"))

	s := out.String()
	assert.Contains(t, s, "Storage Keys for mystorage")
	assert.NotContains(t, s, strings.Repeat("c", 32))
}

func TestClient_GetKeys_UnknownType(t *testing.T) {
	// Binary that would fail loudly if invoked; an unknown type must
	// never reach az.
	client, out := newTestClient(t, "#!/bin/sh\nexit 99\n")

	err := client.GetKeys(context.Background(), "database", "x", "y")
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Unknown resource type: database")
	assert.Contains(t, s, "cognitive, openai, storage")
}

func TestClient_CreateResourceGroup_DefaultLocation(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.CreateResourceGroup(context.Background(), "new-rg", ""))
	assert.Contains(t, out.String(), `Resource group "new-rg" created in eastus`)
}

func TestClient_CreateCognitive_ChainsToKeys(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.CreateCognitive(context.Background(), "my-ai", "prod-rg", ""))

	s := out.String()
	assert.Contains(t, s, `Cognitive Service "my-ai" (CognitiveServices) created`)
	assert.Contains(t, s, "API Keys for my-ai", "creation must fetch and print the keys")
}

func TestClient_CreateOpenAI_UsesOpenAIKind(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.CreateOpenAI(context.Background(), "my-oai", "prod-rg"))
	assert.Contains(t, out.String(), `(OpenAI) created`)
}

func TestClient_CreateStorage_ChainsToKeys(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.CreateStorage(context.Background(), "mystorage", "prod-rg"))

	s := out.String()
	assert.Contains(t, s, `Storage account "mystorage" created`)
	assert.Contains(t, s, "Storage Keys for mystorage")
}

func TestClient_ListDeployments(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	deps, err := client.ListDeployments(context.Background(), "my-oai", "prod-rg")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "gpt-4", deps[0].Properties.Model.Name)
	assert.Contains(t, out.String(), "Deployments for my-oai")
}

func TestClient_CreateDeployment_Defaults(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.CreateDeployment(context.Background(), "my-oai", "prod-rg", "chat", "", ""))
	assert.Contains(t, out.String(), `Deployment "chat" (gpt-4) created`)
}

func TestClient_FailurePrintedNotFatal(t *testing.T) {
	client, out := newTestClient(t, "#!/bin/sh\necho 'please run az login' >&2\nexit 1\n")

	_, err := client.ListSubscriptions(context.Background())
	require.Error(t, err, "library callers still see the failure")
	assert.Contains(t, out.String(), "Error: please run az login")
}

func TestClient_SetSubscription(t *testing.T) {
	client, out := newTestClient(t, fakeAZ)

	require.NoError(t, client.SetSubscription(context.Background(), "sub-1"))
	assert.Contains(t, out.String(), "Active subscription set to: sub-1")
}
