package extract

import (
	"testing"

	"ai-docgen-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsArtifact(path, content string) *store.Artifact {
	return &store.Artifact{
		ID:       path,
		Path:     path,
		Language: "typescript",
		Content:  content,
	}
}

func findComponent(components []*store.Component, compType, name string) *store.Component {
	for _, c := range components {
		if c.Type == compType && c.Name == name {
			return c
		}
	}
	return nil
}

func TestExtractClassWithExtends(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("auth.ts", `import { BaseService } from './base';

export class AuthService extends BaseService {
  login() {
    return this.request('/login');
  }
}
`))

	class := findComponent(components, store.ComponentTypeClass, "AuthService")
	require.NotNil(t, class)
	assert.Equal(t, "auth.ts:class:authservice", class.ID)
	assert.Equal(t, true, class.Metadata["isExported"])

	var extends *store.Relation
	for i := range class.Relations {
		if class.Relations[i].Type == store.RelationExtends {
			extends = &class.Relations[i]
		}
	}
	require.NotNil(t, extends)
	assert.Equal(t, "BaseService", extends.Target)

	login := findComponent(components, store.ComponentTypeFunction, "login")
	require.NotNil(t, login)
	assert.Equal(t, true, login.Metadata["isMethod"])
	assert.Equal(t, "AuthService", login.Metadata["parentClass"])
}

func TestExtractImportsAttachToEveryComponent(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("util.ts", `import { format } from 'date-fns';
import axios from 'axios';

export function formatDate(d) { return format(d); }
export const MAX_RETRIES = 3;
`))

	require.NotEmpty(t, components)
	for _, c := range components {
		targets := map[string]bool{}
		for _, r := range c.Relations {
			if r.Type == store.RelationImports {
				targets[r.Target] = true
				assert.InDelta(t, 0.95, r.Confidence, 0.001)
			}
		}
		assert.True(t, targets["format"], "component %s missing format import", c.Name)
		assert.True(t, targets["axios"], "component %s missing axios import", c.Name)
	}
}

func TestExtractReactComponentAndHooks(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("Button.tsx", `export const Button = () => {
  const [count, setCount] = useState(0);
  const theme = useTheme();
  return (
    <StyledButton onClick={() => setCount(count + 1)}>{count}</StyledButton>
  );
};
`))

	button := findComponent(components, store.ComponentTypeComponent, "Button")
	require.NotNil(t, button)

	var uses []string
	for _, r := range button.Relations {
		if r.Type == store.RelationUses {
			uses = append(uses, r.Target)
		}
	}
	assert.Contains(t, uses, "useState")
	assert.Contains(t, uses, "useTheme")
}

func TestExtractHookDeclaration(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("useAuth.ts", `export function useAuth() {
  const ctx = useContext(AuthContext);
  return ctx;
}
`))

	hook := findComponent(components, store.ComponentTypeHook, "useAuth")
	require.NotNil(t, hook)
}

func TestExtractCallsExcludeControlFlow(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("svc.ts", `function process(items) {
  if (items.length) {
    for (const i of items) {
      validate(i);
      transform(i);
    }
  }
  return items;
}
`))

	fn := findComponent(components, store.ComponentTypeFunction, "process")
	require.NotNil(t, fn)

	var calls []string
	for _, r := range fn.Relations {
		if r.Type == store.RelationCalls {
			calls = append(calls, r.Target)
			assert.InDelta(t, 0.8, r.Confidence, 0.001)
		}
	}
	assert.Contains(t, calls, "validate")
	assert.Contains(t, calls, "transform")
	assert.NotContains(t, calls, "if")
	assert.NotContains(t, calls, "for")
	assert.NotContains(t, calls, "return")
}

func TestExtractDeterministicOrder(t *testing.T) {
	e := NewTypeScriptExtractor()
	src := tsArtifact("a.ts", "export class A {}\nexport function b() {}\nexport const C_MAX = 1;\n")

	first := e.Extract(src)
	second := e.Extract(src)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestExtractMalformedInputNeverPanics(t *testing.T) {
	e := NewTypeScriptExtractor()

	inputs := []string{
		"",
		"class {{{{",
		"import {",
		"}}}} export const =",
		"function (\n\n\n",
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			e.Extract(tsArtifact("broken.ts", input))
		})
	}
}

func TestRelationConfidenceAlwaysInRange(t *testing.T) {
	e := NewTypeScriptExtractor()
	components := e.Extract(tsArtifact("mix.ts", `import React from 'react';
export class Store extends Base {}
export const App = () => { const s = useStore(); return (<div/>); };
`))

	for _, c := range components {
		for _, r := range c.Relations {
			assert.GreaterOrEqual(t, r.Confidence, 0.0)
			assert.LessOrEqual(t, r.Confidence, 1.0)
		}
	}
}
