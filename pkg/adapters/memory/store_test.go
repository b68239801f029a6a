package memory_test

import (
	"testing"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunOutcomeStoreContract(t, memory.NewStore())
}
