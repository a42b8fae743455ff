package devserver

import "github.com/aiethics/selfcheck/internal/api"

// standardSeed lists the questions of one standard of the default bank.
type standardSeed struct {
	name      string
	questions []string
}

var defaultSeeds = []standardSeed{
	{"Human rights", []string{
		"Does the system avoid decisions that infringe on fundamental rights?",
		"Can affected people contest an outcome produced by the system?",
	}},
	{"Privacy", []string{
		"Is personal data collected only for a stated purpose?",
		"Are users told what personal data the system processes?",
		"Is personal data pseudonymized or anonymized where possible?",
		"Can users request deletion of their personal data?",
		"Is access to personal data restricted by role?",
	}},
	{"Diversity", []string{
		"Was training data checked for under-represented groups?",
		"Are outcomes compared across demographic groups?",
		"Were people from diverse backgrounds involved in design reviews?",
		"Is the interface usable by people with disabilities?",
		"Is there a process for reporting biased outcomes?",
	}},
	{"Infringement", []string{
		"Has the system been assessed for potential harm to users?",
		"Is there a mechanism to stop the system when it causes harm?",
		"Are third-party rights respected in the training data?",
		"Is the system prevented from generating deceptive content?",
		"Are misuse scenarios documented and mitigated?",
	}},
	{"Publicity", []string{
		"Does the system serve a public benefit beyond its operator?",
		"Are the social effects of the system reviewed periodically?",
		"Is the system accessible to users regardless of income?",
		"Are public stakeholders consulted on major changes?",
		"Is the system's purpose published in plain language?",
	}},
	{"Solidarity", []string{
		"Does the system avoid excluding vulnerable groups?",
		"Are the benefits of the system shared with affected communities?",
		"Is the system designed to preserve human relationships?",
		"Are workers affected by automation given support?",
		"Is feedback from affected communities acted upon?",
	}},
	{"Data management", []string{
		"Is the provenance of training data recorded?",
		"Are data quality checks run before training?",
		"Is data retention limited to a defined period?",
		"Are datasets versioned alongside the models trained on them?",
		"Is access to datasets logged?",
	}},
	{"Responsibility", []string{
		"Is a person accountable for the system's outcomes named?",
		"Are decisions made by the system traceable after the fact?",
		"Is there an incident response process for the system?",
		"Are known limitations communicated to operators?",
		"Is the system audited by a party independent of its developers?",
	}},
	{"Safety", []string{
		"Has the system been tested against adversarial input?",
		"Is there a fallback when the system fails?",
		"Are failures monitored and alerted on?",
		"Is the system's behavior bounded in safety-critical settings?",
		"Are security updates applied on a schedule?",
	}},
	{"Transparency", []string{
		"Are users told they are interacting with an AI system?",
		"Can the system explain the main factors behind an outcome?",
		"Is model documentation available to operators?",
		"Are evaluation results published?",
		"Are material changes to the system announced in advance?",
	}},
}

// DefaultBank returns the question bank served by the dev server. Question
// IDs are assigned sequentially from 1 in standard order.
func DefaultBank() []api.Standard {
	bank := make([]api.Standard, 0, len(defaultSeeds))
	id := 1
	for _, seed := range defaultSeeds {
		s := api.Standard{StandardName: seed.name, Questions: make([]api.Question, 0, len(seed.questions))}
		for _, q := range seed.questions {
			s.Questions = append(s.Questions, api.Question{QuestionID: id, Question: q})
			id++
		}
		bank = append(bank, s)
	}
	return bank
}
