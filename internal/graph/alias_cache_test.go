package graph

import (
	"sync"
	"testing"
)

func TestAliasMapForSharesSingleBuild(t *testing.T) {
	employee := cyclicFixture(t)

	const goroutines = 16
	results := make([]*AliasMap, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			am, err := AliasMapFor(employee)
			if err != nil {
				t.Errorf("AliasMapFor: %v", err)
				return
			}
			results[i] = am
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers got different alias map instances")
		}
	}
}

func TestAliasMapForCachesAcrossCalls(t *testing.T) {
	employee := cyclicFixture(t)

	first, err := AliasMapFor(employee)
	if err != nil {
		t.Fatalf("AliasMapFor: %v", err)
	}
	second, err := AliasMapFor(employee)
	if err != nil {
		t.Fatalf("AliasMapFor: %v", err)
	}
	if first != second {
		t.Error("second call must hit the in-process cache")
	}

	FlushAliasMaps()
	third, err := AliasMapFor(employee)
	if err != nil {
		t.Fatalf("AliasMapFor: %v", err)
	}
	if third == first {
		t.Error("flush must evict the cached alias map")
	}
}

func TestAliasCacheByteCapRefusesOversizedEntry(t *testing.T) {
	employee := cyclicFixture(t)
	SetAliasCacheMaxBytes(1)
	defer SetAliasCacheMaxBytes(0)

	first, err := AliasMapFor(employee)
	if err != nil {
		t.Fatalf("AliasMapFor: %v", err)
	}
	// Запись не поместилась в лимит — кэш пуст, следующий вызов строит заново.
	second, err := AliasMapFor(employee)
	if err != nil {
		t.Fatalf("AliasMapFor: %v", err)
	}
	if first == second {
		t.Error("entry over the byte cap must not be cached")
	}
}
