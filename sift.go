// Package sift turns web pages and social-media searches into structured,
// normalized results. Pages are reduced to their headers, links, images,
// resource references and a short summary. Social searches are dispatched to
// scraping actors and their heterogeneous records are mapped onto a single
// SocialResult shape.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, firecrawl/, apify/).
package sift
