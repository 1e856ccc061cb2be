package prompt

import (
	"fmt"
	"strings"
)

// FallbackPhrase is the fixed in-band acknowledgement used when retrieved
// context does not address the question. Synthesis stages instruct the model
// to emit it verbatim instead of inventing an answer.
const FallbackPhrase = "The information available does not address this question directly, " +
	"but here's how you might approach it given general best practices."

// Reformulate builds the standalone-question rewrite prompt. History entries
// are the session's prior reformulated questions, oldest first.
func Reformulate(history []string, question string) string {
	var b strings.Builder
	b.WriteString(`Reformulate the latest user question so that it can be understood independently of the chat history.
Do not provide an answer. Focus solely on rephrasing the question, without any explanation or preamble.

Rules:
- Vague questions (e.g. "What happened?" or "Answer this question"): refer to the most recent unanswered or related question from the chat history and fold in enough context for clarity.
- Contextual references: if the question hints at or builds upon a previous question, include the necessary context from the chat history.
- Instruction-based questions (e.g. "Write this as that"): return them unchanged.
- Standalone questions that do not reference the chat history: return them unchanged.
- Table requests: if the question implies tabular output, reformulate explicitly to prompt a table, e.g. "Could you create a table listing the metrics for this project?"
- Maintain a conversational tone and preserve the original intent. Do not add unnecessary detail.

`)
	b.WriteString("chat history: ")
	b.WriteString(formatHistory(history))
	b.WriteString("\nuser question: ")
	b.WriteString(question)
	return b.String()
}

// ReformulateMEL builds the MEL-specific second reformulation pass. It is
// safe to apply to an already-reformulated question.
func ReformulateMEL(question string) string {
	return `Reformulate the user question so it is independently understandable, preserving intent and a conversational tone, without any preamble or explanation. Do not provide answers under any circumstances.

Specific instructions:
- If the word "plan" appears in the question (e.g. "Plan for ..."), reformulate to "Design a MEL plan for ..." (Monitoring, Evaluation, and Learning).
- If the question already asks to design a MEL plan, return it unchanged.
- Instruction-based questions ("Write this as that"): return unchanged.
- Questions about evaluations or similar topics ("How do I conduct an evaluation?"): return unchanged.
- Questions requiring tables: reformulate explicitly to prompt tabular output.
- Simplify jargon-heavy phrasing while maintaining accuracy.

user question: ` + question
}

// RouterRules is the classification instruction mapping question intent to
// one of the six expert personas.
const RouterRules = `Given the user's question, determine the most suitable area of expertise (agent) to address it, without any preamble or explanation. If none clearly fits, output Communication.

Agent selection rules:

Methodology — research design, framework development, sampling strategies, sample size determination, randomization, evaluation methods, comparative analyses, impact assessment design.
Example: "How do I determine the sample size for a randomized trial?" -> Methodology

Technical — innovative technologies (AI/ML, GIS, remote sensing, sector-specific tools), feasibility studies, technical assessments, development theories and frameworks (Theory of Change, sector strategies).
Example: "How can GIS mapping be used to track project impact?" -> Technical

Implementation — project execution, translating plans into actionable steps, timeline management, scheduling, risk mitigation, budgeting, staffing, resource allocation.
Example: "How can we adapt our project timeline to accommodate resource delays?" -> Implementation

MEL — monitoring systems, dashboards, indicator tracking, performance reviews, logframes, results-based management, baseline/endline surveys, MEL tools.
Example: "What are the best tools to track project performance indicators?" -> MEL

Rules — legal compliance, regulations, donor requirements, international standards, ethical standards, data privacy, labor laws, contractual obligations.
Example: "How do we ensure compliance with GDPR in our survey data collection?" -> Rules

Communication — communication strategies, campaigns, messaging frameworks, outreach plans, stakeholder engagement, advocacy, awareness-raising, storytelling.
Example: "What is the best way to engage stakeholders in our community project?" -> Communication

Handling overlaps: prioritize the agent whose expertise is most critical to the primary intent of the question. If truly ambiguous, default to Communication.

Output exactly one agent name.`

// RouteQuestion wraps the rules with the question to classify.
func RouteQuestion(question string) string {
	return RouterRules + "\n\nHere is the input question: " + question
}

// GradeRelevance builds the binary passage-relevance grading prompt.
func GradeRelevance(question, document string) string {
	return fmt.Sprintf(`You are a grader assessing relevance of a retrieved document to a user question. If the document contains keywords related to the user question, grade it as relevant. It does not need to be a stringent test; the goal is to filter out erroneous retrievals.
Give a binary score 'yes' or 'no' to indicate whether the document is relevant to the question, with no preamble or explanation.

Here is the retrieved document:

%s

Here is the user question: %s`, document, question)
}

// GradeGrounding builds the hallucination-check prompt: is the answer
// supported by the given facts.
func GradeGrounding(facts, generation string) string {
	return fmt.Sprintf(`You are a grader assessing whether an answer is grounded in and supported by a set of facts. Give a binary 'yes' or 'no' score with no preamble or explanation.

Here are the facts:
----------
%s
----------
Here is the answer: %s`, facts, generation)
}

// GradeUsefulness builds the answer-usefulness grading prompt.
func GradeUsefulness(question, generation string) string {
	return fmt.Sprintf(`You are a grader assessing whether an answer is useful to resolve a question. Give a binary 'yes' or 'no' score with no preamble or explanation.

Here is the answer:
----------
%s
----------
Here is the question: %s`, generation, question)
}

// MultiQuery asks the model for alternative phrasings of a retrieval query.
func MultiQuery(question string, n int) string {
	return fmt.Sprintf(`You are an AI language model assistant. Generate %d different versions of the given user question to retrieve relevant documents from a vector database. By generating multiple perspectives on the user question, your goal is to help overcome limitations of distance-based similarity search.
Provide the alternative questions separated by newlines, with no numbering, preamble or explanation.

Original question: %s`, n, question)
}

// Draft builds the grounding-stage prompt: answer from retrieved context,
// flagging gaps with the fixed fallback phrasing.
func Draft(question, context string) string {
	return fmt.Sprintf(`You are an assistant specializing in answering questions with a focus on providing strategic, impactful, and inclusive communication. Your responses must be accessible, detailed, and culturally sensitive.

Behavioral directives:
- Write at a 10th-grade reading level. Use clear language while maintaining depth and precision.
- Provide detailed answers that address all facets of the question, with relevant nuances, explanations, and actionable insights.
- If the required information is not found within the provided context, acknowledge the gap constructively by saying: %q
- Begin responses by directly addressing the question. Avoid referencing the context explicitly, such as starting with "Based on the context provided."
- Keep the tone neutral, inclusive, and respectful of social nuances.

Question: %s
Context: %s
Answer:`, FallbackPhrase, question, context)
}

// Final builds the audience-facing composition prompt from the combined
// draft + specialization context.
func Final(question, context, agent string) string {
	return fmt.Sprintf(`You are an assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question.

Your primary goal is to craft and disseminate clear and impactful messages that effectively convey the answer to diverse audiences. You will communicate in a way that raises awareness, fosters transparency, and builds trust. Your role is critical in ensuring that communication is not only impactful but also inclusive and respectful.

Directives:
- Address the question directly, without referencing the retrieved context explicitly.
- Do not include a "call to action" section; it is redundant. Do not include redundant headings.
- If the required information is not found within the provided context, acknowledge the gap constructively by saying: %q
- When asked about your expertise, identity, or role, clarify that you are the agent with the role specified in the context.

Expected output: a clear, very detailed, impactful and well-communicated answer tailored to the context and question, designed to engage the audience.

Here is the input question: %s
Here is the context: %s
Here is the agent: %s`, FallbackPhrase, question, context, agent)
}

// Suggestions builds the follow-up question generation prompt. The model is
// asked to emit a bracketed array.
func Suggestions(question, answer string) string {
	return fmt.Sprintf(`You are a conversation starter that generates suggestive questions based on a provided question and answer. Generate an array of engaging follow-up questions that encourage deeper exploration, discussion, or understanding of the topic. The questions should not start with an asterisk.
Focus on relevance to the context and avoid repeating the original question. Keep the tone conversational and thought-provoking. Do not include any preamble, explanations, or extra text; output only the list of follow-up questions.

Here is the question: %s
Here is the answer: %s

Output the follow-up questions as an array:`, question, answer)
}

// Greeting builds the greeting response prompt.
func Greeting(question string) string {
	return `Respond to the user's greeting by informing them that you are a virtual assistant for the development-sector knowledge base, ready to help with any questions, concerns, or partnership requests related to USAID programming.

Here is the greeting: ` + question
}

func formatHistory(history []string) string {
	if len(history) == 0 {
		return "(no prior chat history)"
	}
	var b strings.Builder
	for i, q := range history {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q)
	}
	return b.String()
}
