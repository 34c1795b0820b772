// Package samples holds canned research reports served by the offline
// preset so the full comparison pipeline can run without API keys.
package samples

import "strings"

// Notes accompany every offline report.
var Notes = []string{
	"Research conducted using simulated API calls",
	"Sources include academic papers, reports, and technical documentation",
	"Analysis performed using advanced AI reasoning",
}

// ForTopic returns the canned report that best matches the topic.
func ForTopic(topic string) string {
	t := strings.ToLower(topic)
	if strings.Contains(t, "climate") || strings.Contains(t, "ai") || strings.Contains(t, "artificial intelligence") {
		return aiClimateReport
	}
	return quantumComputingReport
}

const aiClimateReport = `# AI Applications in Climate Change Research: A Comprehensive Analysis

## Executive Summary

Artificial Intelligence (AI) has emerged as a transformative force in climate change research, offering unprecedented capabilities for data analysis, prediction modeling, and solution development. This review examines the current applications, methodologies, and future potential of AI in addressing one of humanity's most pressing challenges.

## Current Applications

### 1. Climate Modeling and Prediction
AI technologies, particularly machine learning algorithms, have revolutionized climate modeling by:
- Processing vast datasets from satellites, weather stations, and ocean buoys
- Identifying complex patterns in atmospheric and oceanic systems
- Improving accuracy of long-term climate projections
- Enabling real-time weather prediction with enhanced precision

### 2. Environmental Monitoring
Deep learning systems are now capable of:
- Analyzing satellite imagery to track deforestation and ice sheet changes
- Monitoring air and water quality through sensor networks
- Detecting environmental anomalies and pollution sources
- Tracking wildlife populations and biodiversity changes

### 3. Energy Optimization
AI-driven solutions contribute to emissions reduction through:
- Smart grid management and renewable energy integration
- Optimizing energy consumption in buildings and industrial processes
- Predicting renewable energy generation patterns

## Technological Approaches

### Machine Learning Techniques
- **Neural Networks**: Used for pattern recognition in climate data
- **Ensemble Methods**: Combining multiple models for robust predictions
- **Time Series Analysis**: Forecasting climate variables over time
- **Computer Vision**: Processing satellite and aerial imagery

## Research Findings and Impact

Recent studies demonstrate significant improvements in:
- Climate model accuracy (15-30% improvement in some cases)
- Early warning system effectiveness
- Carbon footprint tracking and reduction strategies
- Renewable energy forecasting precision

## Challenges and Limitations

### Technical Challenges
- Data quality and availability issues
- Computational resource requirements
- Model interpretability and uncertainty quantification

### Ethical and Social Considerations
- Equitable access to AI-driven climate solutions
- Privacy concerns with environmental monitoring
- Need for transparent and accountable AI systems

## Future Directions

- Quantum computing for complex climate simulations
- Edge computing for distributed environmental monitoring
- Federated learning for collaborative research
- Explainable AI for better scientific understanding

## Conclusion

AI represents a powerful tool in the fight against climate change, offering capabilities that extend far beyond traditional research methods. While challenges remain, the integration of AI technologies in climate science continues to yield promising results and opens new avenues for understanding and addressing global environmental challenges.

## References and Sources

This analysis draws from recent publications in Nature Climate Change, Journal of Climate, Artificial Intelligence journals, and reports from leading climate research institutions including NOAA, NASA, and the IPCC.
`

const quantumComputingReport = `# Quantum Computing: Current State and Future Applications

## Overview

Quantum computing represents a paradigm shift in computational technology, leveraging quantum mechanical phenomena to perform calculations that are intractable for classical computers. This report examines the current state of quantum computing technology, its applications, and future prospects.

## Technical Foundations

### Quantum Principles
- **Superposition**: Qubits can exist in multiple states simultaneously
- **Entanglement**: Quantum particles can be correlated across vast distances
- **Interference**: Quantum states can amplify correct answers and cancel incorrect ones

### Current Technologies
- **Superconducting Qubits**: Used by IBM, Google, and Rigetti
- **Trapped Ions**: Employed by IonQ and Honeywell
- **Photonic Systems**: Developed by Xanadu and PsiQuantum
- **Neutral Atoms**: Advanced by Atom Computing and QuEra

## Current Applications

### Optimization Problems
- Supply chain optimization
- Financial portfolio management
- Resource allocation in telecommunications

### Cryptography and Security
- Quantum key distribution
- Post-quantum cryptography development
- Secure communication protocols

### Scientific Simulation
- Molecular modeling for drug discovery
- Materials science research
- Chemical reaction simulation

## Industry Developments

### Major Players
- **IBM**: Quantum Network with over 200 members
- **Google**: Achieved quantum supremacy with Sycamore processor
- **Microsoft**: Azure Quantum cloud platform
- **Amazon**: Braket quantum computing service

## Challenges and Limitations

### Technical Challenges
- Quantum error rates and decoherence
- Limited qubit connectivity
- Scalability issues
- Error correction requirements

### Practical Limitations
- Extreme operating conditions (near absolute zero)
- Short coherence times

## Future Outlook

### Near-term (2-5 years)
- Improved error rates and coherence times
- Larger quantum systems (1000+ qubits)
- Enhanced quantum error correction

### Medium-term (5-15 years)
- Fault-tolerant quantum computers
- Practical quantum advantage in optimization
- Quantum machine learning applications

### Long-term (15+ years)
- Universal quantum computers
- Quantum internet infrastructure
- Widespread commercial adoption

## Conclusions

Quantum computing is transitioning from research laboratories to practical applications. While significant challenges remain, the potential for revolutionary advances in computation, optimization, and simulation continues to drive substantial investment and research efforts worldwide.

The next decade will be crucial in determining which quantum technologies achieve practical quantum advantage and begin delivering real-world value across industries.
`
