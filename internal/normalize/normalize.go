package normalize

import (
	"encoding/json"
	"log"

	"dario.cat/mergo"

	"github.com/camille/cv-forge/internal/types"
)

// Normalize folds one raw extraction fragment into a canonical profile.
// prior may be nil for a first extraction. The fragment may be flat or
// nested and may use any known field-name dialect; malformed fields degrade
// gracefully. The result is always a valid profile; Normalize never fails.
//
// The fold is the caller's accumulation primitive:
//
//	canonical = Normalize(canonical, fragment)
//
// Information present in prior but absent from the fragment survives; new
// information augments. On scalar conflicts the fragment wins, on the
// assumption that later extractions are more complete.
func Normalize(prior *types.CanonicalProfile, fragment map[string]any) *types.CanonicalProfile {
	parsed := decodeFragment(NormalizeShape(fragment))
	if prior == nil {
		merged := *parsed
		finalize(&merged)
		return &merged
	}

	merged := cloneProfile(prior)
	mergeInto(merged, parsed)
	finalize(merged)
	return merged
}

// NormalizeAll folds a sequence of fragments accumulated over time,
// left to right, into one canonical profile.
func NormalizeAll(fragments []map[string]any) *types.CanonicalProfile {
	var profile *types.CanonicalProfile
	for _, fragment := range fragments {
		profile = Normalize(profile, fragment)
	}
	if profile == nil {
		profile = Normalize(nil, nil)
	}
	return profile
}

// ParseFragment decodes a raw JSON payload into the loosely-typed fragment
// form Normalize accepts. Invalid JSON yields an empty fragment.
func ParseFragment(data []byte) map[string]any {
	var fragment map[string]any
	if err := json.Unmarshal(data, &fragment); err != nil {
		log.Printf("normalize: discarding unparseable fragment: %v", err)
		return map[string]any{}
	}
	return fragment
}

// mergeInto folds the parsed fragment into dst section by section.
func mergeInto(dst, fragment *types.CanonicalProfile) {
	// Identity scalars: fragment fields override when set, prior data
	// survives where the fragment is silent.
	if err := mergo.Merge(&dst.Profil, fragment.Profil, mergo.WithOverride); err != nil {
		log.Printf("normalize: profil merge failed, keeping prior: %v", err)
	}
	if fragment.Identity != nil {
		if dst.Identity == nil {
			dst.Identity = &types.Identity{}
		}
		if err := mergo.Merge(&dst.Identity.Contact, fragment.Identity.Contact, mergo.WithOverride); err != nil {
			log.Printf("normalize: identity merge failed, keeping prior: %v", err)
		}
	}

	dst.Experiences = append(dst.Experiences, fragment.Experiences...)

	dst.Competences.Explicit = unionSkillGroups(dst.Competences.Explicit, fragment.Competences.Explicit)
	dst.Competences.Inferred = unionSkillGroups(dst.Competences.Inferred, fragment.Competences.Inferred)
	dst.Competences.Categories = unionCategories(dst.Competences.Categories, fragment.Competences.Categories)
	dst.Competences.SkillMap = mergeSkillMap(dst.Competences.SkillMap, fragment.Competences.SkillMap)

	dst.Formations = unionFormations(dst.Formations, fragment.Formations)
	dst.Certifications = unionCertifications(dst.Certifications, fragment.Certifications)
	dst.Langues = unionLangues(dst.Langues, fragment.Langues)
	dst.Projets = unionProjets(dst.Projets, fragment.Projets)

	if fragment.References != nil {
		if dst.References == nil {
			dst.References = &types.References{}
		}
		dst.References.Clients = unionClientRefs(dst.References.Clients, fragment.References.Clients)
	}
	if fragment.ClientsReferences != nil {
		dst.ClientsReferences = fragment.ClientsReferences
	}
	if fragment.ContexteEnrichi != nil {
		dst.ContexteEnrichi = fragment.ContexteEnrichi
	}
}

// finalize deduplicates experiences and stamps stable IDs after merging,
// so IDs always reflect the merged tuples.
func finalize(profile *types.CanonicalProfile) {
	if profile.Experiences == nil {
		profile.Experiences = []types.Experience{}
	}
	profile.Experiences = dedupeExperiences(profile.Experiences)
	AssignIDs(profile)
}

func mergeSkillMap(dst, src map[string]json.RawMessage) map[string]json.RawMessage {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]json.RawMessage, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// cloneProfile deep-copies a profile through JSON so the fold never aliases
// caller-owned memory.
func cloneProfile(p *types.CanonicalProfile) *types.CanonicalProfile {
	data, err := json.Marshal(p)
	if err != nil {
		copied := *p
		return &copied
	}
	var out types.CanonicalProfile
	if err := json.Unmarshal(data, &out); err != nil {
		copied := *p
		return &copied
	}
	return &out
}
