package generation

import (
	"fmt"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

const fallbackName = "SkillBoost"

// %[1]s is the interests answer, %[2]s the income goal; both go in as typed.
const fallbackLandingPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>SkillBoost - Transform Your %[1]s</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Arial', sans-serif;
            line-height: 1.6;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            min-height: 100vh;
            padding: 40px 20px;
            text-align: center;
        }
        .container { max-width: 800px; margin: 0 auto; }
        h1 { font-size: 3rem; margin-bottom: 20px; }
        .cta-button {
            background: linear-gradient(45deg, #ff6b6b, #ee5a24);
            color: white;
            padding: 18px 40px;
            border: none;
            border-radius: 50px;
            font-size: 1.1rem;
            cursor: pointer;
            margin: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>🚀 SkillBoost</h1>
        <p>Transform your expertise in %[1]s into a thriving business</p>
        <button class="cta-button">Start Your Journey - %[2]s Goal</button>
    </div>
</body>
</html>`

// Fallback builds the template idea shown when the remote generator fails.
// It depends only on the interests and income answers.
func Fallback(answers models.FormAnswers) models.StartupIdea {
	interests := answers.Interests
	income := answers.DesiredIncome

	return models.StartupIdea{
		Name:         fallbackName,
		Concept:      fmt.Sprintf("A consulting and educational service leveraging your expertise in %s to help others learn and succeed.", interests),
		Monetization: fmt.Sprintf("Online courses (%s/month target) + one-on-one consulting + affiliate partnerships", income),
		ToolsNeeded: []string{
			"Content creation tools",
			"Online course platform",
			"Social media presence",
			"Basic website",
		},
		MVPPlan: []string{
			fmt.Sprintf("Create free content around %s to build audience", interests),
			"Set up simple website with contact form and service descriptions",
			"Launch email newsletter with weekly tips and insights",
			"Offer free consultation calls to validate demand",
			"Develop first paid offering based on most common needs",
		},
		LandingPageHTML: fmt.Sprintf(fallbackLandingPage, interests, income),
	}
}
