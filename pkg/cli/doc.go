// Package cli implements the command-line interface for the mlready tool.
//
// # Overview
//
// The mlready CLI diagnoses a machine's readiness for LLM fine-tuning and
// generates the artifacts needed to fix or containerize the environment. It
// is designed for ML engineers preparing workstations and single-node GPU
// servers for fine-tuning jobs.
//
// # Commands
//
// diagnose - Probe the environment:
//
//	mlready diagnose [--full] [--output FILE] [--format table|json|yaml|csv|html]
//
// Runs independent readiness probes (CUDA driver, PyTorch, ML libraries,
// GPU memory, disk headroom, hub reachability) in parallel and renders the
// findings. The full mode adds Docker GPU passthrough and systemd service
// checks. Exits non-zero on critical findings unless --fail-on-critical=false.
//
// fix - Generate environment setup files:
//
//	mlready fix [--conda] [--stack trl-peft|minimal] [--output DIR]
//
// Generates requirements.txt plus venv or conda setup scripts pinned to a
// training stack's package constraints.
//
// dockerize - Generate a container build context:
//
//	mlready dockerize MODEL [--service] [--output DIR] [--push REF]
//
// Generates a Dockerfile, requirements, and entrypoint for fine-tuning a
// supported model, optionally with a FastAPI inference service, and can
// push the bundle to an OCI registry as an artifact.
//
// render - Re-render a saved report:
//
//	mlready render REPORT [--output FILE] [--format table|json|yaml|csv|html]
//
// Loads a JSON or YAML report produced by diagnose --output (a local path
// or an http(s) URL) and renders it in another format without re-running
// any probes.
//
// models - List supported models:
//
//	mlready models [--format table|json|yaml]
//
// smoke-test - Verify the environment end to end:
//
//	mlready smoke-test [--model tinyllama] [--keep]
//
// Generates and runs a minimal LoRA fine-tuning script, exercising the
// driver, CUDA kernels, and the ML library stack together.
//
// # Global Flags
//
//	--config       Config file path (default: ./mlready.yaml, ~/.mlready/config.yaml)
//	--log-level    Set logging verbosity (debug, info, warn, error)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Table (default for terminal output):
//   - Check names, status glyphs, and a summary line
//
// JSON / YAML:
//   - Full report including header metadata, suitable for automation
//
// CSV:
//   - One row per finding: Check, Status, Severity, Fix, Details
//
// HTML:
//   - Self-contained report page for sharing
//
// # Usage Examples
//
// Quick readiness scan:
//
//	mlready diagnose
//
// Full scan exported as HTML:
//
//	mlready diagnose --full --output report.html
//
// Prepare a conda environment for the minimal stack:
//
//	mlready fix --conda --stack minimal --output ./env
//
// Containerize TinyLlama fine-tuning with an inference service:
//
//	mlready dockerize tinyllama --service --output ./ctx
//
// # Environment Variables
//
//	LOG_LEVEL       Set logging verbosity (debug, info, warn, error)
//	MLREADY_CONFIG  Config file path (overridden by --config)
//	HF_HOME         Model cache location checked by the disk probe
//
// # Exit Codes
//
//	0  Success
//	1  General error, critical finding (diagnose), or failed smoke test
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/runner - Parallel probe execution
//   - pkg/probe - Individual readiness probes
//   - pkg/bundle - Dockerfile and environment generation
//   - pkg/export - Output formatting
//   - pkg/oci - Bundle push to OCI registries
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/mlready/pkg/cli.version=1.0.0'"
package cli
