package idgen_test

import (
	"errors"
	"testing"

	"intern-hub-common/pkg/idgen"
	"intern-hub-common/pkg/idgen/core"
	"intern-hub-common/pkg/idgen/registry"
)

func TestNewID(t *testing.T) {
	t.Setenv("HUB_SNOWFLAKE_MACHINE_ID", "21")
	t.Setenv("HUB_LOG_LEVEL", "error")
	registry.ResetDefaultGenerator()
	defer registry.ResetDefaultGenerator()

	id, err := idgen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if !id.IsValid() || id.MachineID() != 21 {
		t.Errorf("NewID() = %d, machine id %d", id, id.MachineID())
	}

	ids, err := idgen.NewIDs(100)
	if err != nil {
		t.Fatalf("NewIDs() error = %v", err)
	}
	if len(ids) != 100 || !ids.IsSorted() || ids[0] <= id {
		t.Errorf("NewIDs() 应返回100个严格递增且晚于%d的ID", id)
	}

	parsed, err := idgen.ParseID(id.Hex())
	if err != nil || parsed != id {
		t.Errorf("ParseID(%s) = %d, %v", id.Hex(), parsed, err)
	}
}

func TestNew(t *testing.T) {
	gen, err := idgen.New(5)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := idgen.ID(gen.Next()).MachineID(); got != 5 {
		t.Errorf("MachineID() = %d, 期望 5", got)
	}

	if _, err := idgen.New(2048); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Errorf("期望ErrInvalidConfiguration, 得到: %v", err)
	}
}
