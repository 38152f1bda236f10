// Package seed holds the sample catalog shown by a fresh installation.
package seed

import (
	"context"
	"fmt"

	"jobflix-backend/internal/domain"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

// Companies returns the sample companies in insertion order.
func Companies() []domain.CompanyInput {
	return []domain.CompanyInput{
		{
			Name:        "TechInnovate",
			Description: "Azienda leader nello sviluppo di soluzioni software innovative per il settore fintech.",
			Industry:    "Software Development",
			Size:        domain.CompanySizeMedium,
			Location:    "Milano, IT",
			Website:     strPtr("https://techinnovate.it"),
			Founded:     intPtr(2018),
		},
		{
			Name:        "CreativeHub",
			Description: "Agenzia creativa specializzata in branding, design digitale e strategie di marketing innovative.",
			Industry:    "Digital Agency",
			Size:        domain.CompanySizeStartup,
			Location:    "Roma, IT",
			Website:     strPtr("https://creativehub.it"),
			Founded:     intPtr(2020),
		},
		{
			Name:        "FinanceForward",
			Description: "Consulenza finanziaria e servizi di investimento con focus su tecnologie blockchain e AI.",
			Industry:    "Financial Services",
			Size:        domain.CompanySizeLarge,
			Location:    "Milano, IT",
			Website:     strPtr("https://financeforward.it"),
			Founded:     intPtr(2015),
		},
		{
			Name:        "CloudTech Solutions",
			Description: "Soluzioni cloud enterprise e servizi di trasformazione digitale per le aziende.",
			Industry:    "Cloud Computing",
			Size:        domain.CompanySizeMedium,
			Location:    "Torino, IT",
			Website:     strPtr("https://cloudtech.it"),
			Founded:     intPtr(2017),
		},
	}
}

// Jobs returns the sample jobs. ids maps a company name to its stored id.
func Jobs(ids map[string]int64) []domain.JobInput {
	job := func(company string, in domain.JobInput) domain.JobInput {
		in.Company = company
		if id, ok := ids[company]; ok {
			in.CompanyID = &id
		}
		in.Type = domain.JobTypeFullTime
		return in
	}

	return []domain.JobInput{
		job("TechInnovate", domain.JobInput{
			Title:       "Senior Frontend Developer",
			Description: "Stiamo cercando un Senior Frontend Developer per unirsi al nostro team dinamico. Lavorerai su progetti innovativi utilizzando React, TypeScript e tecnologie moderne. Opportunità di crescita in un ambiente stimolante e collaborativo.",
			Location:    "Milano, IT",
			Level:       domain.JobLevelSenior,
			Category:    "Sviluppo Software",
			SalaryMin:   intPtr(45000),
			SalaryMax:   intPtr(65000),
			Skills:      []string{"React", "TypeScript", "Next.js", "GraphQL", "Tailwind CSS"},
			Requirements: []string{
				"5+ anni di esperienza in sviluppo frontend",
				"Esperienza approfondita con React e TypeScript",
				"Conoscenza di Next.js e architetture moderne",
				"Capacità di lavorare in team agile",
			},
			Benefits: []string{"Smart working", "Assicurazione sanitaria", "Formazione continua", "Bonus performance"},
		}),
		job("CreativeHub", domain.JobInput{
			Title:       "UX/UI Designer",
			Description: "Cerchiamo un UX/UI Designer creativo per progettare esperienze digitali eccezionali. Lavorerai su progetti per clienti di alto profilo utilizzando Figma, Adobe Creative Suite e metodologie di design thinking.",
			Location:    "Roma, IT",
			Level:       domain.JobLevelMid,
			Category:    "Design & UX",
			SalaryMin:   intPtr(35000),
			SalaryMax:   intPtr(50000),
			Skills:      []string{"Figma", "Adobe XD", "Prototyping", "User Research", "Design Systems"},
			Requirements: []string{
				"3+ anni di esperienza in UX/UI design",
				"Portfolio dimostrabile",
				"Competenze in user research",
				"Conoscenza di design systems",
			},
			Benefits: []string{"Ambiente creativo", "Progetti internazionali", "Flessibilità oraria", "Budget formazione"},
		}),
		job("CreativeHub", domain.JobInput{
			Title:       "Digital Marketing Manager",
			Description: "Unisciti al nostro team di marketing per gestire campagne digitali innovative. Gestirai strategie multi-canale, SEO/SEM, social media marketing e analytics avanzati per clienti enterprise.",
			Location:    "Roma, IT",
			Level:       domain.JobLevelMid,
			Category:    "Marketing",
			SalaryMin:   intPtr(40000),
			SalaryMax:   intPtr(55000),
			Skills:      []string{"Google Ads", "SEO", "Analytics", "Social Media", "Content Marketing"},
			Requirements: []string{
				"4+ anni di esperienza in digital marketing",
				"Certificazioni Google Ads e Analytics",
				"Esperienza con campagne multi-canale",
				"Capacità analitiche avanzate",
			},
			Benefits: []string{"Bonus su obiettivi", "Corsi di aggiornamento", "Team giovane", "Progetti stimolanti"},
		}),
		job("CloudTech Solutions", domain.JobInput{
			Title:       "Backend Developer",
			Description: "Sviluppa soluzioni scalabili per la nostra piattaforma cloud. Lavorerai con microservizi, API RESTful, database distribuiti e tecnologie cloud native per servire milioni di utenti.",
			Location:    "Torino, IT",
			Level:       domain.JobLevelSenior,
			Category:    "Sviluppo Software",
			SalaryMin:   intPtr(50000),
			SalaryMax:   intPtr(70000),
			Skills:      []string{"Node.js", "AWS", "MongoDB", "Docker", "Kubernetes"},
			Requirements: []string{
				"5+ anni di esperienza backend",
				"Competenze in architetture cloud",
				"Esperienza con microservizi",
				"Conoscenza di DevOps",
			},
			Benefits: []string{"Tecnologie cutting-edge", "Stock options", "Ambiente internazionale", "Crescita rapida"},
		}),
		job("FinanceForward", domain.JobInput{
			Title:       "Financial Analyst",
			Description: "Analizza mercati finanziari e sviluppa modelli di investimento utilizzando AI e machine learning. Opportunità unica di lavorare con tecnologie innovative nel settore fintech.",
			Location:    "Milano, IT",
			Level:       domain.JobLevelMid,
			Category:    "Finanza",
			SalaryMin:   intPtr(45000),
			SalaryMax:   intPtr(60000),
			Skills:      []string{"Python", "SQL", "Financial Modeling", "Machine Learning", "Bloomberg Terminal"},
			Requirements: []string{
				"Laurea in Economia o Finanza",
				"3+ anni di esperienza in analisi finanziaria",
				"Competenze in Python e SQL",
				"Conoscenza mercati finanziari",
			},
			Benefits: []string{"Bonus performance elevati", "Formazione continua", "Ambiente dinamico", "Tecnologie avanzate"},
		}),
		job("CloudTech Solutions", domain.JobInput{
			Title:       "DevOps Engineer",
			Description: "Gestisci infrastrutture cloud scalabili e processi CI/CD per supportare la nostra crescita. Lavorerai con Kubernetes, AWS e strumenti di automazione all'avanguardia.",
			Location:    "Torino, IT",
			Level:       domain.JobLevelSenior,
			Category:    "Ingegneria",
			SalaryMin:   intPtr(55000),
			SalaryMax:   intPtr(75000),
			Skills:      []string{"Kubernetes", "AWS", "Terraform", "Jenkins", "Monitoring"},
			Requirements: []string{
				"5+ anni di esperienza DevOps",
				"Certificazioni AWS",
				"Esperienza con Infrastructure as Code",
				"Competenze in monitoring e observability",
			},
			Benefits: []string{"Tecnologie all'avanguardia", "Team internazionale", "Autonomia tecnica", "Crescita professionale"},
		}),
	}
}

// Load inserts the sample catalog. It does nothing when companies already exist and
// reports whether anything was written.
func Load(ctx context.Context, companies domain.CompanyRepository, jobs domain.JobRepository) (bool, error) {
	existing, err := companies.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	ids := make(map[string]int64)
	for _, in := range Companies() {
		c, err := companies.Create(ctx, in)
		if err != nil {
			return false, fmt.Errorf("seed company %q: %w", in.Name, err)
		}
		ids[c.Name] = c.ID
	}
	for _, in := range Jobs(ids) {
		if _, err := jobs.Create(ctx, in); err != nil {
			return false, fmt.Errorf("seed job %q: %w", in.Title, err)
		}
	}
	return true, nil
}
