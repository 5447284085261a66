// Package oci pushes generated bundles to OCI-compliant registries.
//
// Bundle directories produced by pkg/bundle are packaged as single-layer
// OCI artifacts (a gzipped tar of the directory contents) using the ORAS
// (OCI Registry As Storage) library, then pushed to any OCI-compliant
// registry (Docker Hub, GHCR, ECR, local registries, etc.).
//
// # Core Types
//
//   - Reference: Parsed registry reference (registry, repository, tag)
//   - PushOptions: Low-level configuration for pushing to remote registries
//   - PushConfig: High-level configuration combining a parsed Reference
//     with artifact annotations
//   - PushResult: Result of a successful push (digest, reference)
//
// # Usage
//
// Parse a reference and push a bundle directory:
//
//	ref, err := oci.ParseReference("ghcr.io/nvidia/mlready-bundles:v1.0.0")
//	if err != nil {
//	    return err
//	}
//
//	result, err := oci.PushBundle(ctx, oci.PushConfig{
//	    SourceDir: "/path/to/bundle",
//	    Reference: ref,
//	    Version:   "v1.0.0",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Digest)
//
// # Authentication
//
// Registry credentials are read from the Docker credential store
// (~/.docker/config.json), so a prior `docker login` against the target
// registry is sufficient. Local registries can be reached over HTTP with
// PlainHTTP, and self-signed TLS certificates with InsecureTLS.
//
// # Reproducibility
//
// Layer tars are created deterministically, so pushing the same bundle
// contents twice yields the same layer digest. Manifest digests also match
// when the caller supplies fixed annotations.
package oci
