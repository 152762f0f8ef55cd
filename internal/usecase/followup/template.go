package followup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// minGeneratedTextLength is the degenerate-output threshold. Generated
// text shorter than this is treated as an empty model response.
const minGeneratedTextLength = 20

const extractionPromptTemplate = `You are given a meeting transcipts of an event called the Innovators Table and the event has 7-10 people, including a host. The main purpose of the meeting is that each attendee share their biggest business challenges and the entire table tries to solve that. The host facilitates the meeting and ensures that each attendee gets a chance to share their challenge.

You are also given the RSVP details of a speaker and your task is to extract the speaker's transcript from the meeting transcripts. Usually, the flow of the meeting is that each attendee starts by intorducing themselves, they talk about their business and share their biggest challenges. And we are interested in extracting the exact transcripts where the target attendee talks about their business and their biggest challenges.

Target Attendee: <<speaker_details>>

Meeting Transcripts: <<meeting_transcripts>>`

const bookletPromptTemplate = `You are given a predefined output template, detailed speaker information, and a full transcript from a single speaker at a private founder dinner event. The event is an intimate Innovators Table gathering where 7–10 founders openly discuss their businesses and challenges. Your role is to transform this one speaker’s raw, messy spoken transcript into a clean, professional follow-up document that exactly matches the provided output format. You must stay strictly grounded in the information from the speaker details and transcript, without inventing or assuming anything. The purpose is to create a ready-to-send recap that clearly captures the speaker’s context, challenges, insights, and next steps in a structured, polished way.

Your goal is to generate a clear, actionable follow-up document based on:
1. A predefined OUTPUT FORMAT template.
2. Detailed SPEAKER DETAILS.
3. Raw SPEAKER TRANSCRIPTS from a meeting.

Task: Carefully read all three sections below, then produce a polished follow-up document that strictly follows the OUTPUT FORMAT structure and uses only information grounded in the speaker details and transcripts.

Document Generation rules:
- No emojis
- No long dashes (indicating AI-generated document)
- No tables, use bulleted list instead

You will receive input in this structure:

OUTPUT FORMAT:

[Month Year] | Confidential Strategic Document
[Company Name] - Innovators Table Strategic Brief

What Happened at Your Table
On [IT_Date], you sat with [Number_of_people] entrepreneurs at the Innovators Table. Over 3 hours, we explored real challenges, shared hard-won insights, and created actionable pathways forward. This brief captures what matters most for YOUR business—the insights, connections, and immediate actions that can create momentum in the next 14 days.

Why This Matters Now:
[1-2 sentences about urgency/timing for their specific situation]

YOUR 5-MINUTE WIN (Do This Right Now):
[One tiny action they can complete immediately - e.g., "Text [Name] right now: 'Great meeting you at the table. Coffee this week?'" or "Block 30 minutes on your calendar for Action #1"]

Why this matters: Momentum starts with the first step, no matter how small.

Your Situation: What We Heard
Company: [Company Name]
Industry: [Industry]
Current Revenue: [Revenue range]
Team Size: [Number]
Time in Business: [Duration]
Your Primary Challenge:
[One paragraph summary of their main problem stated at table]
Quote from You:
"[Direct quote from transcript that captures their situation]"

What We Observed:
[Observation 1 about their business/situation]
[Observation 2 about their business/situation]
[Observation 3 about their business/situation]

Key Insights from the Table
These are the most valuable insights specifically for your situation:
Insight #1: [Main Insight]
[2-3 sentences explaining the insight and why it matters for them]
Insight #2: [Second Insight]
[2-3 sentences explaining the insight and why it matters for them]
Insight #3: [Third Insight]
[2-3 sentences explaining the insight and why it matters for them]

Resources Mentioned:
[Book/Tool/Contact mentioned at table]
[Book/Tool/Contact mentioned at table]
[Book/Tool/Contact mentioned at table]

Your 7-Day Action Plan
These three actions will create the most momentum for your business this week:
Action #1: [Specific Action]
Why: [Why this matters]
How: [Specific steps to take]
Deadline: [Day/Date]
Action #2: [Specific Action]
Why: [Why this matters]
How: [Specific steps to take]
Deadline: [Day/Date]
Action #3: [Specific Action]
Why: [Why this matters]
How: [Specific steps to take]
Deadline: [Day/Date]

Success Tracker (Check Off as You Complete):
☐ Action #1 completed by [Date]
☐ Action #2 completed by [Date]
☐ Action #3 completed by [Date]
☐ Connected with [Name 1]
☐ Connected with [Name 2]
☐ Progress email sent to request full Strategic Mirror Document

IF YOU ONLY DO ONE THING THIS WEEK:
[The single highest-impact action from your 3 actions above]
Do this, and everything else becomes easier.

Success Metrics (How to Know You're Winning):
Week 1: [Specific metric - e.g., "You've scheduled 2 key conversations"]
Week 2: [Specific metric - e.g., "You have clarity on your decision and next steps"]
30 Days: [Specific outcome - e.g., "Deal in progress OR revenue increased 15%"]

Connections to Make
People from the table who can help you:
[Name] - [Company]
Why connect: [Specific reason relevant to their business]
Suggested approach: [How to reach out]
[Name] - [Company]
Why connect: [Specific reason relevant to their business]
Suggested approach: [How to reach out]

What Others Are Saying
Previous Innovators Table attendees who implemented their action plans:

"It was a great experience! I feel lucky to be able to get to know so many amazing individuals. I’ve never had a discussion like that where business builders were just so open with each other and really listen and give advice that saved us a lot of time and money going down the wrong path."
Charlie Gomez, Founder and CEO at CG Trades

"This was single-handedly the most beneficial and rewarding professional meeting I’ve had in years. And it didn’t even end up just being about work, it centered on how I can be a better person. I loved the experience! The other people in the room had incredibly insightful feedback for me."
Chase Huntzinger, CEO at Piton Ventures & CFO at Second Chair AI

"The dinner meeting offered a great opportunity to exchange ideas, gain perspective from others in the field, and explore potential collaborations. It was both productive and enjoyable."
Jeremy L Christensen, Chairman/CEO at Euldora Financial


What's Next: Your Full Strategic Mirror Document
This brief gives you immediate actions for the next 14 days. But there's more.
Your Full Strategic Mirror Document includes:
Complete 30/60/90 day transformation roadmap
Detailed implementation frameworks and templates
Financial projections and models specific to your situation
Step-by-step playbooks for your biggest challenges
Complete resource guide with all connections and tools
Strategic analysis of your competitive position
The full document is typically 15-20 pages of customized strategy.

To receive your complete Strategic Mirror Document:
Implement the 7-day action plan above
Email your progress update to: dalton@theinnovatorstable.com
The full document is reserved for those who take action. Complete your 7-day plan, and we'll send you the complete strategic roadmap.

Stuck or Have Questions? Reach out:
Email: dalton@theinnovatorstable.com
Text: +1 (801) 555-0123 (yes, really)
We want you to succeed. If you hit a wall, ask for help.

We would love to hear about:
What you implemented from this brief
Results you achieved
Your next biggest challenge

The table is watching. Make us proud.

Document prepared for: [Name]
Innovators Table | [Month Year]


SPEAKER DETAILS:
<<speaker_details>>

OTHER ATTENDEES ON THE TABLE:
<<other_attendees>>

SPEAKER TRANSCRIPTS:
<<speaker_transcripts>>`

// BuildExtractionPrompt renders the segment-extraction prompt for one
// attendee against the full meeting transcript.
func BuildExtractionPrompt(profile entities.AttendeeProfile, transcript string) string {
	prompt := strings.Replace(extractionPromptTemplate, "<<speaker_details>>", profileJSON(profile), 1)
	return strings.Replace(prompt, "<<meeting_transcripts>>", transcript, 1)
}

// BuildBookletPrompt renders the booklet-synthesis prompt for one
// attendee: their profile, everyone else at the table, and their
// extracted transcript segment.
func BuildBookletPrompt(roster *entities.Roster, label string, segment string, eventDate string) string {
	entry, ok := roster.Entry(label)
	if !ok {
		return ""
	}

	prompt := strings.Replace(bookletPromptTemplate, "<<speaker_details>>", profileJSON(entry.Profile), 1)
	prompt = strings.Replace(prompt, "<<other_attendees>>", othersJSON(roster, label), 1)
	prompt = strings.Replace(prompt, "<<speaker_transcripts>>", segment, 1)

	now := time.Now()
	prompt = strings.ReplaceAll(prompt, "[IT_Date]", fmt.Sprintf("%s_%s", eventDate, now.Format("2006")))
	prompt = strings.ReplaceAll(prompt, "[Number_of_people]", strconv.Itoa(roster.Len()))
	prompt = strings.ReplaceAll(prompt, "[Month Year]", now.Format("January 2006"))

	return prompt
}

func profileJSON(profile entities.AttendeeProfile) string {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func othersJSON(roster *entities.Roster, excludeLabel string) string {
	others := make(map[string]entities.AttendeeProfile)
	for _, entry := range roster.Others(excludeLabel) {
		others[entry.Label] = entry.Profile
	}

	data, err := json.MarshalIndent(others, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
