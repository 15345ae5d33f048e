package extract

import (
	"testing"

	"ai-docgen-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoStructAndMethods(t *testing.T) {
	e := NewGoExtractor()
	components := e.Extract(&store.Artifact{
		Path:     "internal/service/user.go",
		Language: "go",
		Content: `package service

import (
	"context"
	"fmt"
)

type UserService struct {
	repo Repository
}

func (s *UserService) FindByID(ctx context.Context, id string) error {
	return s.repo.Find(ctx, id)
}

func helper() {}
`,
	})

	svc := findComponent(components, store.ComponentTypeClass, "UserService")
	require.NotNil(t, svc)
	assert.Equal(t, "struct", svc.Metadata["kind"])
	assert.Equal(t, true, svc.Metadata["isExported"])

	find := findComponent(components, store.ComponentTypeFunction, "FindByID")
	require.NotNil(t, find)
	assert.Equal(t, "UserService", find.Metadata["receiver"])

	var depends []string
	for _, r := range find.Relations {
		if r.Type == store.RelationDependsOn {
			depends = append(depends, r.Target)
		}
	}
	assert.Contains(t, depends, "UserService")

	helper := findComponent(components, store.ComponentTypeFunction, "helper")
	require.NotNil(t, helper)
	assert.Equal(t, false, helper.Metadata["isExported"])
}

func TestGoImportBlock(t *testing.T) {
	e := NewGoExtractor()
	components := e.Extract(&store.Artifact{
		Path:     "main.go",
		Language: "go",
		Content: `package main

import (
	"fmt"
	gz "compress/gzip"
	"net/http"
)

func main() {
	fmt.Println("ok")
}
`,
	})

	main := findComponent(components, store.ComponentTypeFunction, "main")
	require.NotNil(t, main)

	targets := map[string]bool{}
	for _, r := range main.Relations {
		if r.Type == store.RelationImports {
			targets[r.Target] = true
		}
	}
	assert.True(t, targets["fmt"])
	assert.True(t, targets["gz"])
	assert.True(t, targets["http"])
}

func TestGoInterface(t *testing.T) {
	e := NewGoExtractor()
	components := e.Extract(&store.Artifact{
		Path:     "contract.go",
		Language: "go",
		Content:  "type Store interface {\n\tGet(id string) error\n}\n",
	})

	iface := findComponent(components, store.ComponentTypeInterface, "Store")
	require.NotNil(t, iface)
}
