package e2e

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"memory_mapping/internal/http/dto"
	"memory_mapping/internal/model"
)

// seed adds n memories alternating between 0xA and 0xB, starting with 0xA.
func seed(t *testing.T, baseURL string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		owner := "0xA"
		if i%2 == 0 {
			owner = "0xB"
		}
		addMemory(t, baseURL, owner, fmt.Sprintf("testMemoryId%d", i))
	}
}

func TestLatestWindowOverHTTP(t *testing.T) {
	server, _ := newTestServer(t, testConfig(), &noopPublisher{})
	seed(t, server.URL, 33)

	var count dto.CountResponse
	getJSON(t, server.URL+"/memories/count", &count)
	require.Equal(t, int64(33), count.Count)

	getJSON(t, server.URL+"/owners/count", &count)
	require.Equal(t, int64(2), count.Count)

	var latest []model.Memory
	getJSON(t, server.URL+"/memories/latest", &latest)
	require.Len(t, latest, 30)
	require.Equal(t, "testMemoryId4", latest[0].MemoryID)
	require.Equal(t, "testMemoryId31", latest[27].MemoryID)
	require.Equal(t, "testMemoryId33", latest[29].MemoryID)
	for i, m := range latest {
		require.Equal(t, int64(i+3), m.Sequence)
	}

	getJSON(t, server.URL+"/owners/0xA/memories/count", &count)
	require.Equal(t, int64(17), count.Count)
	getJSON(t, server.URL+"/owners/0xB/memories/count", &count)
	require.Equal(t, int64(16), count.Count)

	var owned []model.Memory
	getJSON(t, server.URL+"/owners/0xB/memories", &owned)
	require.Len(t, owned, 16)
	for i, m := range owned {
		require.Equal(t, "0xB", m.Owner)
		require.Equal(t, fmt.Sprintf("testMemoryId%d", 2*(i+1)), m.MemoryID)
	}
}

func TestUnknownOwnerIsEmpty(t *testing.T) {
	server, _ := newTestServer(t, testConfig(), &noopPublisher{})
	seed(t, server.URL, 3)

	res, err := http.Get(server.URL + "/owners/0xC/memories")
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(string(body)))

	var count dto.CountResponse
	getJSON(t, server.URL+"/owners/0xC/memories/count", &count)
	require.Equal(t, int64(0), count.Count)
}

func TestStreamBackfillsLatestWindow(t *testing.T) {
	server, _ := newTestServer(t, testConfig(), &noopPublisher{})
	seed(t, server.URL, 33)

	stream := openStream(t, server.URL+"/sse/memories")
	for seq := int64(3); seq < 33; seq++ {
		got := stream.nextMemory(t, 2*time.Second)
		require.Equal(t, seq, got.Sequence)
	}

	addMemory(t, server.URL, "0xB", "testMemoryId34")
	got := stream.nextMemory(t, 2*time.Second)
	require.Equal(t, int64(33), got.Sequence)
	require.Equal(t, "testMemoryId34", got.MemoryID)
}

func TestOwnerWithSlashOverHTTP(t *testing.T) {
	server, _ := newTestServer(t, testConfig(), &noopPublisher{})

	const owner = "did:web:example.com/users/1"
	addMemory(t, server.URL, owner, "testMemoryId1")
	addMemory(t, server.URL, "did:web:example.com", "testMemoryId2")
	addMemory(t, server.URL, owner, "testMemoryId3")

	base := server.URL + "/owners/" + url.PathEscape(owner) + "/memories"

	var count dto.CountResponse
	getJSON(t, base+"/count", &count)
	require.Equal(t, int64(2), count.Count)

	var owned []model.Memory
	getJSON(t, base, &owned)
	require.Len(t, owned, 2)
	require.Equal(t, "testMemoryId1", owned[0].MemoryID)
	require.Equal(t, "testMemoryId3", owned[1].MemoryID)
	for _, m := range owned {
		require.Equal(t, owner, m.Owner)
	}

	stream := openStream(t, server.URL+"/sse/owners/"+url.PathEscape(owner))
	require.Equal(t, "testMemoryId1", stream.nextMemory(t, 2*time.Second).MemoryID)
	require.Equal(t, "testMemoryId3", stream.nextMemory(t, 2*time.Second).MemoryID)
}
