package eval

// SampleReports are canned inputs for trying the evaluator without any
// stored runs.
var SampleReports = []ReportInput{
	{
		ID:           "report_1",
		Topic:        "AI in Climate Change Research",
		Model:        "openai:gpt-4o",
		SearchAPI:    "tavily",
		SourceCount:  15,
		ResearchTime: 45.2,
		Text: `# AI in Climate Change Research

## Executive Summary
Artificial Intelligence is revolutionizing climate change research through advanced modeling,
prediction systems, and data analysis capabilities.

## Key Findings
1. Machine learning models improve climate prediction accuracy by 25%
2. AI-powered satellite analysis enables real-time deforestation monitoring
3. Deep learning algorithms optimize renewable energy grid management

## Detailed Analysis
Current AI applications include:
- Climate modeling and simulation
- Environmental monitoring
- Carbon footprint optimization
- Renewable energy forecasting

## Recommendations
1. Increase investment in AI climate research
2. Develop standardized AI climate datasets
3. Foster international AI collaboration
`,
	},
	{
		ID:           "report_2",
		Topic:        "AI in Climate Change Research",
		Model:        "anthropic:claude-3-5-sonnet-20241022",
		SearchAPI:    "brave",
		SourceCount:  12,
		ResearchTime: 38.7,
		Text: `# Artificial Intelligence Applications in Climate Science

## Overview
This comprehensive analysis examines how artificial intelligence technologies
are transforming climate change research methodologies and outcomes.

## Core Findings
- AI enhances climate model precision through ensemble learning
- Satellite imagery analysis via deep learning identifies environmental changes
- Predictive algorithms support climate adaptation strategies
- Machine learning optimizes sustainable resource management

## Technical Analysis
The integration of AI in climate research encompasses:
1. Data processing and pattern recognition
2. Predictive modeling and forecasting
3. Real-time monitoring systems
4. Decision support frameworks

## Strategic Implications
Organizations should prioritize AI development for climate applications.
`,
	},
	{
		ID:           "report_3",
		Topic:        "Quantum Computing Applications",
		Model:        "openai:gpt-4o-mini",
		SearchAPI:    "tavily",
		SourceCount:  8,
		ResearchTime: 22.1,
		Text: `# Quantum Computing Applications

## Summary
Quantum computing shows promise in cryptography, optimization, and simulation.

## Findings
- Quantum algorithms solve certain problems exponentially faster
- Current limitations include error rates and coherence time
- Commercial applications emerging in finance and pharmaceuticals

## Applications
1. Cryptography and security
2. Drug discovery
3. Financial modeling
4. Traffic optimization
`,
	},
}
