// Package imageio loads reference images and prepares them for the
// optimizer: center crop to a square, CatmullRom resize, and optional
// Floyd-Steinberg dithering to black and white.
//
// Decoders for PNG, JPEG, GIF, BMP, TIFF and WebP are registered.
package imageio
