package usecase

// documentTemplate returns the skeleton and drafting instructions for a
// document type. Unknown types fall back to the general legal letter.
func documentTemplate(documentType string) (template, instructions string) {
	if t, ok := documentTemplates[documentType]; ok {
		return t.template, t.instructions
	}
	t := documentTemplates["general_legal_letter"]
	return t.template, t.instructions
}

type docTemplate struct {
	template     string
	instructions string
}

var documentTemplates = map[string]docTemplate{
	"demand_letter": {
		template: `[SENDER INFORMATION]
[DATE]

[RECIPIENT INFORMATION]

Re: [SUBJECT]

Dear [RECIPIENT NAME],

[INTRODUCTION]

[FACTS]

[LEGAL BASIS]

[DEMAND]

[CLOSING]

Sincerely,

[SENDER NAME]`,
		instructions: `Create a formal demand letter that:
1. Clearly states the facts of the situation
2. Explains the legal basis for the demand
3. Makes a specific, actionable demand
4. Sets a reasonable deadline for response
5. Maintains a professional, non-threatening tone
6. Indicates potential next steps if demand is not met

Use the parameters provided to fill in the template sections.`,
	},
	"response_letter": {
		template: `[SENDER INFORMATION]
[DATE]

[RECIPIENT INFORMATION]

Re: [SUBJECT]

Dear [RECIPIENT NAME],

[INTRODUCTION]

[RESPONSE TO ALLEGATIONS/CLAIMS]

[LEGAL POSITION]

[PROPOSED RESOLUTION]

[CLOSING]

Sincerely,

[SENDER NAME]`,
		instructions: `Create a formal response letter that:
1. Acknowledges receipt of the original communication
2. Addresses the key allegations or claims
3. States your client's legal position clearly
4. Proposes a resolution if appropriate
5. Maintains a professional tone
6. Protects your client's legal interests

Use the parameters provided to fill in the template sections.`,
	},
	"settlement_agreement": {
		template: `SETTLEMENT AGREEMENT AND RELEASE

This Settlement Agreement and Release ("Agreement") is entered into by and between [PARTY A] ("Party A") and [PARTY B] ("Party B"), collectively referred to as "the Parties."

RECITALS

[BACKGROUND FACTS]

AGREEMENT

1. SETTLEMENT PAYMENT
[PAYMENT TERMS]

2. RELEASE OF CLAIMS
[RELEASE LANGUAGE]

3. NO ADMISSION OF LIABILITY
[NO ADMISSION LANGUAGE]

4. CONFIDENTIALITY
[CONFIDENTIALITY TERMS]

5. NON-DISPARAGEMENT
[NON-DISPARAGEMENT TERMS]

6. GOVERNING LAW
[GOVERNING LAW]

7. ENTIRE AGREEMENT
[ENTIRE AGREEMENT LANGUAGE]

8. EXECUTION
[EXECUTION LANGUAGE]

AGREED TO BY:

______________________________    Date: ____________
[PARTY A NAME]

______________________________    Date: ____________
[PARTY B NAME]`,
		instructions: `Create a settlement agreement that:
1. Clearly identifies the parties and their dispute
2. Specifies the settlement terms including any payments
3. Includes appropriate release language
4. Addresses confidentiality and non-disparagement
5. Contains standard legal provisions (governing law, entire agreement, etc.)
6. Is structured in a legally sound format
7. Uses clear, unambiguous language

Use the parameters provided to fill in the template sections.`,
	},
	"cease_and_desist": {
		template: `[SENDER INFORMATION]
[DATE]

[RECIPIENT INFORMATION]

Re: CEASE AND DESIST - [SUBJECT]

Dear [RECIPIENT NAME],

[INTRODUCTION]

[DESCRIPTION OF VIOLATIONS]

[LEGAL BASIS]

[DEMAND TO CEASE]

[CONSEQUENCES]

[CLOSING]

Sincerely,

[SENDER NAME]`,
		instructions: `Create a cease and desist letter that:
1. Clearly identifies the violating actions
2. Cites the legal basis for demanding cessation
3. Makes a clear demand to stop the specified activities
4. Sets a deadline for compliance
5. Outlines potential legal consequences for non-compliance
6. Maintains a professional, authoritative tone

Use the parameters provided to fill in the template sections.`,
	},
	"general_legal_letter": {
		template: `[SENDER INFORMATION]
[DATE]

[RECIPIENT INFORMATION]

Re: [SUBJECT]

Dear [RECIPIENT NAME],

[INTRODUCTION]

[MAIN CONTENT]

[LEGAL POSITION]

[REQUEST/STATEMENT OF INTENT]

[CLOSING]

Sincerely,

[SENDER NAME]`,
		instructions: `Create a general legal letter that:
1. Clearly states the purpose of the communication
2. Presents relevant facts and information
3. Explains the legal position or reasoning
4. Makes any necessary requests or statements of intent
5. Maintains a professional tone appropriate to the context
6. Follows standard legal letter formatting

Use the parameters provided to fill in the template sections.`,
	},
}
