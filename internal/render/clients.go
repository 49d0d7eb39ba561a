package render

import (
	"sort"
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// defaultSector buckets clients with no declared sector.
const defaultSector = "Autre"

// assembleClients gathers client names from the three independent sources a
// profile may carry: the top-level references list, each experience's own
// client list, and pre-grouped clients attached by an upstream enrichment
// step. Names are deduplicated by exact display form and grouped by sector.
// Returns nil when no client exists anywhere, so the section is absent
// rather than empty.
func assembleClients(profile *types.CanonicalProfile, opts Options) *types.ClientsCV {
	type bucket struct {
		secteur string
		clients []string
	}
	order := make([]string, 0, 4)
	buckets := make(map[string]*bucket)
	seenClients := make(map[string]struct{})
	total := 0

	add := func(secteur, client string) {
		client = strings.TrimSpace(client)
		if textutil.IsPlaceholder(client) {
			return
		}
		if _, dup := seenClients[client]; dup {
			return
		}
		seenClients[client] = struct{}{}

		secteur = strings.TrimSpace(secteur)
		if secteur == "" || textutil.IsPlaceholder(secteur) {
			secteur = defaultSector
		}
		key := textutil.Comparable(secteur)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{secteur: secteur}
			buckets[key] = b
			order = append(order, key)
		}
		b.clients = append(b.clients, client)
		total++
	}

	// Source 1: pre-grouped clients keep their declared sectors.
	if profile.ClientsReferences != nil {
		for _, g := range profile.ClientsReferences.Groupes {
			for _, c := range g.Clients {
				add(g.Secteur, c)
			}
		}
	}
	// Source 2: the top-level references list.
	if profile.References != nil {
		for _, ref := range profile.References.Clients {
			add(ref.Secteur, ref.Nom)
		}
	}
	// Source 3: per-experience client lists, sector unknown.
	for _, e := range profile.Experiences {
		for _, c := range e.ClientsReferences {
			add("", c)
		}
	}

	if total == 0 {
		return nil
	}

	// "Autre" sinks below declared sectors.
	sort.SliceStable(order, func(i, j int) bool {
		return (buckets[order[i]].secteur != defaultSector) && (buckets[order[j]].secteur == defaultSector)
	})

	groupes := make([]types.ClientGroupeCV, 0, len(order))
	remaining := opts.MaxClients
	for _, key := range capList(order, opts.MaxClientGroups) {
		b := buckets[key]
		clients := b.clients
		if len(clients) > remaining {
			clients = clients[:remaining]
		}
		if len(clients) == 0 {
			continue
		}
		remaining -= len(clients)
		groupes = append(groupes, types.ClientGroupeCV{Secteur: b.secteur, Clients: clients})
		if remaining <= 0 {
			break
		}
	}

	return &types.ClientsCV{Groupes: groupes, Total: total}
}

// clientCount reports the pre-truncation client total, 0 when absent.
func clientCount(clients *types.ClientsCV) int {
	if clients == nil {
		return 0
	}
	return clients.Total
}
