package render

import (
	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// Convert projects a canonical profile into a renderer-ready document. It
// is a pure function of (profile, opts): no internal caching, no mutation
// of its input, so callers may invoke it repeatedly with different options
// (including the unlimited dry run) and get consistent results. It never
// fails; malformed sections render as empty.
func Convert(profile *types.CanonicalProfile, opts Options) *types.CVData {
	opts = opts.withDefaults()
	if profile == nil {
		profile = &types.CanonicalProfile{}
	}

	cv := &types.CVData{
		Identite:      resolveIdentity(profile),
		ElevatorPitch: RepairText(profile.Profil.ElevatorPitch),
	}

	var totalExps, totalBullets int
	cv.Experiences, totalExps, totalBullets = projectExperiences(profile.Experiences, opts)

	technical, soft := consolidateSkills(profile.Competences, opts.InferredConfidenceMin)
	cv.CompetencesTechniques = capList(technical, opts.MaxTechnicalSkills)
	cv.SoftSkills = capList(soft, opts.MaxSoftSkills)

	formations := projectFormations(profile.Formations)
	cv.Formations = capList(formations, opts.MaxFormations)

	langues := consolidateLanguages(profile.Langues)
	cv.Langues = capList(langues, opts.MaxLanguages)

	certifications := projectCertifications(profile.Certifications)
	cv.Certifications = capList(certifications, opts.MaxCertifications)

	projets := projectProjets(profile.Projets)
	cv.Projets = capList(projets, opts.MaxProjects)

	cv.ClientsReferences = assembleClients(profile, opts)

	cv.Totaux = types.SectionTotals{
		Experiences:           totalExps,
		Realisations:          totalBullets,
		CompetencesTechniques: len(technical),
		SoftSkills:            len(soft),
		Formations:            len(formations),
		Langues:               len(langues),
		Certifications:        len(certifications),
		Projets:               len(projets),
		Clients:               clientCount(cv.ClientsReferences),
	}
	return cv
}

// resolveIdentity fills the identity block via the ordered candidate
// resolver: for each contact field, the first non-placeholder value across
// the profil and identity.contact dialects wins; with no real source the
// field stays empty, never the placeholder text.
func resolveIdentity(profile *types.CanonicalProfile) types.IdentiteCV {
	var contact types.Contact
	if profile.Identity != nil {
		contact = profile.Identity.Contact
	}
	p := profile.Profil

	return types.IdentiteCV{
		Nom:          RepairText(p.Nom),
		Prenom:       RepairText(p.Prenom),
		Titre:        RepairText(p.Titre),
		Email:        textutil.FirstNonPlaceholder(p.Email, contact.Email),
		Telephone:    textutil.FirstNonPlaceholder(p.Telephone, contact.Telephone),
		Localisation: RepairText(textutil.FirstNonPlaceholder(p.Localisation, contact.Localisation)),
		LinkedIn:     textutil.FirstNonPlaceholder(p.LinkedIn, contact.LinkedIn),
		GitHub:       textutil.FirstNonPlaceholder(p.GitHub, contact.GitHub),
		Portfolio:    textutil.FirstNonPlaceholder(p.Portfolio, contact.Portfolio),
	}
}

func projectFormations(formations []types.Formation) []types.FormationCV {
	out := make([]types.FormationCV, 0, len(formations))
	for _, f := range formations {
		diplome := RepairText(f.Diplome)
		etablissement := RepairText(f.Etablissement)
		if diplome == "" && etablissement == "" {
			continue
		}
		out = append(out, types.FormationCV{
			Diplome:       diplome,
			Etablissement: etablissement,
			Annee:         RepairText(f.Annee),
		})
	}
	return out
}

func projectCertifications(certifications []types.Certification) []string {
	out := make([]string, 0, len(certifications))
	seen := make(map[string]struct{})
	for _, c := range certifications {
		nom := RepairText(c.Nom)
		if nom == "" {
			continue
		}
		if c.Organisme != "" {
			nom += " (" + RepairText(c.Organisme) + ")"
		}
		key := textutil.Comparable(nom)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, nom)
	}
	return out
}

func projectProjets(projets []types.Projet) []types.ProjetCV {
	out := make([]types.ProjetCV, 0, len(projets))
	for _, p := range projets {
		nom := RepairText(p.Nom)
		if nom == "" {
			continue
		}
		out = append(out, types.ProjetCV{
			Nom:          nom,
			Description:  RepairText(p.Description),
			Technologies: p.Technologies,
		})
	}
	return out
}
